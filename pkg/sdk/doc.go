// Package docsearch is an embedded Go client for BM25 document search over
// Elasticsearch or the Redis Query Engine.
//
// It runs the same validation, query building and error mapping as the
// docsearch HTTP gateway, in process:
//
//	client, _ := docsearch.New(ctx, docsearch.WithElasticsearch("http://localhost:9200"))
//	defer client.Close()
//
//	_, _ = client.Documents().Add(ctx, docsearch.Document{
//	    ID: "t1", Title: "테스트 문서", Content: "본문",
//	})
//	page, _ := client.Search(ctx, docsearch.Query{Text: "테스트"})
//
// Errors wrap the package sentinels; use errors.Is to tell a missing document
// (ErrDocumentNotFound) from an unreachable engine (ErrUpstreamUnavailable).
package docsearch
