// Package socialsdk is a Go client for the Tether social service.
//
// The SDKClient covers unauthenticated operations: registration, login and
// invite status lookups. Login returns a Session which carries the bearer
// token for everything else: friends, invites and notifications.
//
//	client := socialsdk.NewSDKClient("http://localhost:8080")
//	session, err := client.Login(ctx, "alice", "password")
//	if err != nil { ... }
//	friends, err := session.Friends(ctx)
package socialsdk
