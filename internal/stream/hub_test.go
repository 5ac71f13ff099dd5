package stream

import (
	"testing"
	"time"

	"github.com/keyfob-dev/keyfob/internal/totp"
)

const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func newTestClient() *Client {
	return &Client{
		id:   "test",
		send: make(chan Update, 8),
		subs: make(map[string]Subscription),
	}
}

func TestMakeUpdate(t *testing.T) {
	sub := Subscription{Label: "work", Secret: rfcSecret, Window: 30}
	update := makeUpdate(sub, time.Unix(60, 0))

	if update.Label != "work" {
		t.Errorf("label = %q, want %q", update.Label, "work")
	}
	if update.Code != "359152" {
		t.Errorf("code = %q, want %q", update.Code, "359152")
	}
	if update.SecondsRemaining != 30 {
		t.Errorf("seconds remaining = %d, want 30", update.SecondsRemaining)
	}
}

func TestMakeUpdateBadSecret(t *testing.T) {
	// An undecodable secret surfaces as the sentinel, not a dead stream.
	update := makeUpdate(Subscription{Label: "broken", Secret: "====", Window: 30}, time.Unix(60, 0))
	if update.Code != totp.DisplayInvalid {
		t.Errorf("code = %q, want %q", update.Code, totp.DisplayInvalid)
	}
}

func TestSubscribePushesImmediately(t *testing.T) {
	client := newTestClient()
	client.Subscribe(Subscription{Label: "work", Secret: rfcSecret})

	select {
	case update := <-client.send:
		if update.Label != "work" {
			t.Errorf("label = %q, want %q", update.Label, "work")
		}
		if len(update.Code) != 6 {
			t.Errorf("code %q is not 6 digits", update.Code)
		}
		if update.Window != totp.DefaultWindow {
			t.Errorf("window = %d, want the default", update.Window)
		}
		if update.SecondsRemaining < 1 || update.SecondsRemaining > totp.DefaultWindow {
			t.Errorf("seconds remaining %d outside [1, %d]", update.SecondsRemaining, totp.DefaultWindow)
		}
	default:
		t.Fatal("no update delivered on subscribe")
	}
}

func TestUnsubscribe(t *testing.T) {
	client := newTestClient()
	client.Subscribe(Subscription{Label: "work", Secret: rfcSecret})
	<-client.send

	client.Unsubscribe("work")
	if subs := client.subscriptions(); len(subs) != 0 {
		t.Errorf("expected no subscriptions, got %d", len(subs))
	}
}

func TestPushNewWindows(t *testing.T) {
	hub := &Hub{clients: make(map[*Client]bool)}
	client := newTestClient()
	client.subs["work"] = Subscription{Label: "work", Secret: rfcSecret, Window: 30}
	hub.clients[client] = true

	// Mid-window, nothing is due.
	hub.pushNewWindows(time.Unix(75, 0))
	select {
	case update := <-client.send:
		t.Fatalf("unexpected update mid-window: %+v", update)
	default:
	}

	// First second of a window delivers the fresh code.
	hub.pushNewWindows(time.Unix(60, 0))
	select {
	case update := <-client.send:
		if update.Code != "359152" {
			t.Errorf("code = %q, want %q", update.Code, "359152")
		}
	default:
		t.Fatal("no update delivered at the window boundary")
	}
}

func TestDeliverDropsWhenFull(t *testing.T) {
	client := &Client{
		id:   "test",
		send: make(chan Update, 1),
		subs: make(map[string]Subscription),
	}

	client.deliver(Update{Label: "a"})
	client.deliver(Update{Label: "b"}) // must not block

	update := <-client.send
	if update.Label != "a" {
		t.Errorf("label = %q, want %q", update.Label, "a")
	}
}
