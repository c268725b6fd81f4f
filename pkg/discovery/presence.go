package discovery

import (
	"context"
	"log/slog"
	"net/netip"

	"github.com/wifista-project/wifista-go/pkg/station"
)

// Presence advertises the device on the local network while the
// station link is up.
//
// It consumes connection-state notifications from a station client:
// on a connected notification it registers the presence service, on a
// disconnected notification it withdraws it. Run blocks until the
// context is cancelled or the notification channel is closed.
type Presence struct {
	// AddressFunc, when set, supplies the station address for the TXT
	// record at the moment the link comes up. Typically client.Address.
	AddressFunc func() netip.Addr

	// Logger for presence lifecycle messages. Defaults to slog.Default.
	Logger *slog.Logger

	adv    Advertiser
	info   PresenceInfo
	events <-chan station.Event
}

// NewPresence creates a presence runner. The info's Address field is
// overwritten from AddressFunc on each connect when that is set.
func NewPresence(adv Advertiser, info PresenceInfo, events <-chan station.Event) *Presence {
	return &Presence{
		adv:    adv,
		info:   info,
		events: events,
	}
}

// Run processes connection-state notifications until ctx is cancelled
// or the notification channel is closed. The advertisement is withdrawn
// on return.
func (p *Presence) Run(ctx context.Context) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	defer p.adv.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-p.events:
			if !ok {
				return
			}
			switch ev {
			case station.EventConnected:
				info := p.info
				if p.AddressFunc != nil {
					if addr := p.AddressFunc(); addr.IsValid() {
						info.Address = addr.String()
					}
				}
				if err := p.adv.Advertise(&info); err != nil {
					logger.Error("failed to advertise presence", "instance", info.InstanceName, "error", err)
					continue
				}
				logger.Info("presence advertised", "instance", info.InstanceName, "address", info.Address)
			case station.EventDisconnected:
				p.adv.Stop()
				logger.Info("presence withdrawn", "instance", p.info.InstanceName)
			}
		}
	}
}
