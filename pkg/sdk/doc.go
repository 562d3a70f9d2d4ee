// Package sdk embeds the staylens retrieval engine into a Go process,
// wiring the repositories and services directly over a Redis store
// instead of going through the HTTP API.
//
//	client, _ := sdk.New(
//	    sdk.WithRedis("localhost:6379", ""),
//	    sdk.WithOpenAI(os.Getenv("OPENAI_API_KEY"), "", "text-embedding-3-small", "gpt-4o-mini"),
//	)
//	defer client.Close()
//
//	results, _ := client.Search(ctx, "canal loft", sdk.Filter{Market: "Amsterdam"}, 5)
//	reply, _ := client.Chat(ctx, "", "find me a loft near the canals")
package sdk
