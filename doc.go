// Package kgprofile derives candidate Google Discover profile URLs from
// Knowledge Graph search results.
//
// Given an entity name, the Finder queries the Google Knowledge Graph Search
// API and, for each result whose machine identifier (MID) looks like
// "kg:/m/..." or "kg:/g/...", encodes the identifier into a profile URL of
// the form https://profile.google.com/cp/<token>. Identifiers with other
// shapes are reported as a format mismatch, and identifiers too long for the
// encoding are reported as a range error; neither stops the rest of the
// batch.
//
// # Basic Usage
//
//	client, err := kgsearch.NewClient(kgsearch.Config{APIKey: apiKey})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	finder := kgprofile.New(client, nil)
//	candidates, err := finder.Find(ctx, "semrush", 5)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, c := range candidates {
//		if c.Profile.Status == mid.StatusEncoded {
//			fmt.Println(c.Entity.Name, c.Profile.URL)
//		}
//	}
//
// The encoding itself lives in pkg/mid and can be used standalone; the API
// client lives in pkg/kgsearch.
package kgprofile
