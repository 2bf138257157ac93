package apicollectionv1

import (
	"github.com/fulldump/box"

	"github.com/fulldump/slotdb/service"
)

func BuildV1Collection(v1 *box.R, s service.Servicer) *box.R {

	collections := v1.Resource("/collections").
		WithActions(
			box.Get(listCollections).WithName("listCollections"),
			box.Post(createCollection).WithName("createCollection"),
		)

	v1.Resource("/collections/{collectionName}").
		WithActions(
			box.Get(getCollection).WithName("getCollection"),
			box.ActionPost(insert).WithName("insert"),
			box.ActionPost(find).WithName("find"),
			box.ActionPost(remove).WithName("remove"),
			box.ActionPost(patch).WithName("patch"),
			box.ActionPost(clearCollection).WithName("clear"),
			box.ActionPost(dropCollection).WithName("dropCollection"),
			box.ActionPost(listIndexes).WithName("listIndexes"),
			box.ActionPost(createIndex).WithName("createIndex"),
			box.ActionPost(getIndex).WithName("getIndex"),
			box.ActionPost(dropIndex).WithName("dropIndex"),
			box.ActionPost(setDefaults).WithName("setDefaults"),
			box.ActionPost(size).WithName("size"),
		)

	v1.Resource("/collections/{collectionName}/documents/{documentId}").
		WithActions(
			box.Get(getDocument).WithName("getDocument"),
			box.Patch(patchDocument).WithName("patchDocument"),
			box.Delete(deleteDocument).WithName("deleteDocument"),
		)

	v1.Resource("/stats").
		WithActions(
			box.Get(stats).WithName("stats"),
		)

	return collections
}
