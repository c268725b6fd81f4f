package station

import (
	"errors"
	"net/netip"

	"github.com/wifista-project/wifista-go/pkg/driver"
	"github.com/wifista-project/wifista-go/pkg/eventloop"
	"github.com/wifista-project/wifista-go/pkg/log"
)

// Compile-time interface satisfaction check.
var _ eventloop.Handler = (*Client)(nil)

// HandleEvent is the driver event handler. The event loop invokes it on
// the dispatch goroutine; application code must not call it.
//
// Notifications fire before the connected flag flips, so a receiver never
// observes a flag value the matching notification has not been queued
// for. Fan-out itself runs outside the state lock.
func (c *Client) HandleEvent(ev eventloop.Event) {
	session, ssid := c.session()
	c.capture.Log(log.NewDriverEvent(session, ssid, ev))

	switch ev.Category {
	case eventloop.CategoryInterface:
		c.handleInterfaceEvent(ev, session, ssid)
	case eventloop.CategoryAddress:
		c.handleAddressEvent(ev, session, ssid)
	}
}

func (c *Client) handleInterfaceEvent(ev eventloop.Event, session, ssid string) {
	switch ev.Kind {
	case eventloop.KindInterfaceStarted:
		c.logger.Debug("received station start event, connecting")
		if err := c.drv.Connect(); err != nil {
			c.softError("driver connect", err, session, ssid)
		}

	case eventloop.KindStationDisconnected:
		c.logger.Debug("received station disconnected event, reconnecting")
		if c.IsConnected() {
			// Station was connected before, fire disconnected event
			c.fireEvent(EventDisconnected)
			c.capture.Log(log.NewStateChangeEvent(session, ssid, log.LinkUp, log.LinkDown, ""))
		}
		c.setConnected(false, netip.Addr{})
		if err := c.drv.Connect(); err != nil {
			c.softError("driver reconnect", err, session, ssid)
		}

	case eventloop.KindInterfaceReady:
		c.logger.Debug("received interface ready event")

	case eventloop.KindStationConnected:
		// Link-layer association only; connected means addressed.
		c.logger.Debug("received station connected event, waiting for address")
	}
}

func (c *Client) handleAddressEvent(ev eventloop.Event, session, ssid string) {
	if ev.Kind != eventloop.KindAddressAcquired {
		return
	}

	c.logger.Debug("station connected, address acquired", "addr", ev.Addr)
	if !c.IsConnected() {
		// Station was not connected before, fire connected event
		c.fireEvent(EventConnected)
		addrText := ""
		if ev.Addr.IsValid() {
			addrText = ev.Addr.String()
		}
		c.capture.Log(log.NewStateChangeEvent(session, ssid, log.LinkDown, log.LinkUp, addrText))
	}
	c.setConnected(true, ev.Addr)
}

// softError records a failure absorbed inside the handler. There is no
// caller to surface it to; the driver retries on the next qualifying
// event.
func (c *Client) softError(op string, err error, session, ssid string) {
	c.logger.Error(op+" had an error", "error", err)

	var code int32
	var derr *driver.Error
	if errors.As(err, &derr) {
		code = int32(derr.Code)
	}
	c.capture.Log(log.NewErrorEvent(session, ssid, op, err.Error(), code))
}
