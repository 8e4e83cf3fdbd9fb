// Package mesto is a client for the Mesto REST API: one profile per token and
// a shared list of image cards that can be added, deleted and liked.
//
// Requests carry the token in the authorization header and JSON bodies.
// Every call is a single attempt; callers decide what to do with failures.
//
// Example:
//
//	var cfg mesto.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	client, err := mesto.New(cfg, mesto.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	user, err := client.GetUserInfo(ctx)
//
// A non-2xx response is returned as *StatusError:
//
//	var se *mesto.StatusError
//	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
//		// card is gone
//	}
package mesto
