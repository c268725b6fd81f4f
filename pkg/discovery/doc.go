// Package discovery announces the station's presence on the local
// network via mDNS.
//
// Once the station acquires an address, applications typically want the
// device to be findable: the Presence runner consumes connection-state
// notifications from a station client and registers an mDNS service
// while the link is up, withdrawing it when the link goes down.
//
// The lifecycle core never touches the network stack itself; presence
// advertising is a consumer of its notifications, wired up by the
// application.
//
//	events, _ := client.RegisterEventReceiver(4)
//	adv, _ := discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())
//	p := discovery.NewPresence(adv, info, events)
//	go p.Run(ctx)
package discovery
