package sip_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/peterpangl/sipxecs/sip"
	"github.com/peterpangl/sipxecs/sip/header"
)

const inviteMsg = "INVITE sip:bob@biloxi.example.com SIP/2.0\r\n" +
	"Via: SIP/2.0/UDP proxy.example.com;branch=z9hG4bK-XX-0001~top, SIP/2.0/TCP edge.example.com;branch=z9hG4bKmid\r\n" +
	"v: SIP/2.0/UDP pc33.atlanta.example.com;branch=z9hG4bK776asdhds\r\n" +
	"Max-Forwards: 70\r\n" +
	"t: Bob <sip:bob@BILOXI.example.com>\r\n" +
	"f: \"Alice\" <sip:alice@atlanta.example.com>;tag=1928301774\r\n" +
	"i: a84b4c76e66710@pc33.atlanta.example.com\r\n" +
	"CSeq:   314159   invite\r\n" +
	"m: <sip:alice@pc33.atlanta.example.com;x-sipx-route=1>,\r\n" +
	" <sip:alice@home.example.com>\r\n" +
	"l: 4\r\n" +
	"\r\n" +
	"v=0\r\nextra"

func parse(t *testing.T, s string) *sip.Message {
	t.Helper()
	msg, err := sip.ParseMessage([]byte(s))
	if err != nil {
		t.Fatalf("sip.ParseMessage() error = %v, want nil", err)
	}
	return msg
}

func TestParseMessage_Request(t *testing.T) {
	t.Parallel()

	msg := parse(t, inviteMsg)

	if !msg.IsRequest() {
		t.Fatalf("msg.IsRequest() = false, want true")
	}
	if got, want := msg.StartLine(), "INVITE sip:bob@biloxi.example.com SIP/2.0"; got != want {
		t.Errorf("msg.StartLine() = %q, want %q", got, want)
	}
	if got, want := msg.CallID(), "a84b4c76e66710@pc33.atlanta.example.com"; got != want {
		t.Errorf("msg.CallID() = %q, want %q", got, want)
	}
	if got, want := msg.CSeq(), "314159 INVITE"; got != want {
		t.Errorf("msg.CSeq() = %q, want %q", got, want)
	}
	if got, want := msg.FromTag(), "1928301774"; got != want {
		t.Errorf("msg.FromTag() = %q, want %q", got, want)
	}
	if got, want := msg.To(), "sip:bob@BILOXI.example.com"; got != want {
		t.Errorf("msg.To() = %q, want %q", got, want)
	}
	if got, want := msg.RequestURI(), "sip:bob@biloxi.example.com"; got != want {
		t.Errorf("msg.RequestURI() = %q, want %q", got, want)
	}
	wantBranches := []string{"z9hG4bK-XX-0001~top", "z9hG4bKmid", "z9hG4bK776asdhds"}
	if diff := cmp.Diff(msg.ViaBranches(), wantBranches); diff != "" {
		t.Errorf("msg.ViaBranches() = %v, want %v\ndiff (-got +want):\n%v", msg.ViaBranches(), wantBranches, diff)
	}
	if got, want := string(msg.Body), "v=0\r"; got != want {
		t.Errorf("msg.Body = %q, want %q", got, want)
	}

	cnt, err := msg.Contacts()
	if err != nil {
		t.Fatalf("msg.Contacts() error = %v, want nil", err)
	}
	var aors []string
	for _, c := range cnt {
		aors = append(aors, c.URI.AddrOfRecord())
	}
	wantAORs := []string{"sip:alice@pc33.atlanta.example.com", "sip:alice@home.example.com"}
	if diff := cmp.Diff(aors, wantAORs); diff != "" {
		t.Errorf("contact AORs = %v, want %v\ndiff (-got +want):\n%v", aors, wantAORs, diff)
	}
}

func TestParseMessage_Response(t *testing.T) {
	t.Parallel()

	msg := parse(t, "SIP/2.0 180 Ringing\n"+
		"Via: SIP/2.0/UDP pc33.atlanta.example.com;branch=z9hG4bK776asdhds\n"+
		"To: Bob <sip:bob@biloxi.example.com>;tag=a6c85cf\n"+
		"Call-ID: a84b4c76e66710\n"+
		"CSeq: 1 INVITE\n"+
		"\n")

	if msg.IsRequest() {
		t.Fatalf("msg.IsRequest() = true, want false")
	}
	if msg.StatusCode != 180 || msg.Reason != "Ringing" {
		t.Errorf("msg status = %d %q, want 180 \"Ringing\"", msg.StatusCode, msg.Reason)
	}
	if got, want := msg.To(), "sip:bob@biloxi.example.com;tag=a6c85cf"; got != want {
		t.Errorf("msg.To() = %q, want %q", got, want)
	}
	if len(msg.Body) != 0 {
		t.Errorf("msg.Body = %q, want empty", msg.Body)
	}
	if _, err := msg.Contacts(); !cmp.Equal(err, error(sip.ErrHeaderNotFound), cmpopts.EquateErrors()) {
		t.Errorf("msg.Contacts() error = %v, want %v", err, sip.ErrHeaderNotFound)
	}
}

func TestParseMessage_Errors(t *testing.T) {
	t.Parallel()

	valid := "INVITE sip:bob@example.com SIP/2.0\r\n" +
		"Via: SIP/2.0/UDP a.example.com;branch=z9hG4bK1\r\n" +
		"Call-ID: x\r\nCSeq: 1 INVITE\r\nFrom: <sip:a@example.com>;tag=1\r\nTo: <sip:b@example.com>\r\n\r\n"

	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"bad request line", "INVITE sip:bob@example.com\r\n\r\n"},
		{"bad status line", "SIP/2.0 abc OK\r\n\r\n"},
		{"bad header line", strings.Replace(valid, "Call-ID: x", "Call-ID x", 1)},
		{"leading continuation", "INVITE sip:bob@example.com SIP/2.0\r\n folded\r\n\r\n"},
		{"missing headers", "INVITE sip:bob@example.com SIP/2.0\r\nCall-ID: x\r\n\r\n"},
		{"bad via", strings.Replace(valid, "SIP/2.0/UDP a.example.com", "SIP/2.0 a.example.com", 1)},
		{"bad cseq", strings.Replace(valid, "CSeq: 1 INVITE", "CSeq: one INVITE", 1)},
		{"short body", strings.Replace(valid, "\r\n\r\n", "\r\nContent-Length: 10\r\n\r\nabc", 1)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			_, err := sip.ParseMessage([]byte(c.in))
			if diff := cmp.Diff(err, error(sip.ErrInvalidMessage), cmpopts.EquateErrors()); diff != "" {
				t.Errorf("sip.ParseMessage() error = %v, want %v", err, sip.ErrInvalidMessage)
			}
		})
	}
}

func TestMessage_Render(t *testing.T) {
	t.Parallel()

	msg := sip.NewRequest("options", "sip:carol@chicago.example.com")
	msg.AppendHeader("v", "SIP/2.0/UDP pc33.example.com;branch=z9hG4bK1")
	msg.AppendHeader("call-id", "abc")
	msg.AppendHeader("cseq", "1 OPTIONS")
	msg.AppendHeader("f", "<sip:alice@example.com>;tag=1")
	msg.AppendHeader("t", "<sip:carol@chicago.example.com>")
	msg.PrependVia(header.ViaHop{
		Proto:     header.ProtoInfo{Name: "SIP", Version: "2.0"},
		Transport: "TCP",
		Addr:      header.HostPort("proxy.example.com", 5060),
		Params:    header.Values{"branch": {"z9hG4bK2"}},
	})

	want := "OPTIONS sip:carol@chicago.example.com SIP/2.0\r\n" +
		"Via: SIP/2.0/TCP proxy.example.com:5060;branch=z9hG4bK2\r\n" +
		"Via: SIP/2.0/UDP pc33.example.com;branch=z9hG4bK1\r\n" +
		"Call-ID: abc\r\n" +
		"CSeq: 1 OPTIONS\r\n" +
		"From: <sip:alice@example.com>;tag=1\r\n" +
		"To: <sip:carol@chicago.example.com>\r\n" +
		"\r\n"
	if got := msg.Render(); got != want {
		t.Errorf("msg.Render() = %q, want %q", got, want)
	}

	msg2 := parse(t, msg.Render())
	if diff := cmp.Diff(msg2.ViaBranches(), []string{"z9hG4bK2", "z9hG4bK1"}); diff != "" {
		t.Errorf("re-parsed msg.ViaBranches() diff (-got +want):\n%v", diff)
	}
}

func TestMessage_Headers(t *testing.T) {
	t.Parallel()

	msg := sip.NewResponse(200, "OK")
	msg.AppendHeader("X-A", "1")
	msg.AppendHeader("Via", "SIP/2.0/UDP a.example.com")
	msg.AppendHeader("x-a", "2")
	msg.AppendHeader("X-A", "3")

	if diff := cmp.Diff(msg.HeaderValues("x-a"), []string{"1", "2", "3"}); diff != "" {
		t.Errorf("msg.HeaderValues() diff (-got +want):\n%v", diff)
	}

	msg.SetHeader("X-A", "9")
	want := []sip.HeaderField{{Name: "X-A", Value: "9"}, {Name: "Via", Value: "SIP/2.0/UDP a.example.com"}}
	if diff := cmp.Diff(msg.Headers, want); diff != "" {
		t.Errorf("msg.Headers after SetHeader diff (-got +want):\n%v", diff)
	}

	msg.RemoveHeader("x-a")
	if _, ok := msg.Header("X-A"); ok {
		t.Errorf("msg.Header(\"X-A\") found after RemoveHeader")
	}

	clone := msg.Clone()
	clone.SetHeader("Via", "SIP/2.0/TCP b.example.com")
	if v, _ := msg.Header("Via"); v != "SIP/2.0/UDP a.example.com" {
		t.Errorf("msg modified through clone: Via = %q", v)
	}
}

func TestMessage_ViaBranches_KeepsHopPositions(t *testing.T) {
	t.Parallel()

	msg := sip.NewRequest("INVITE", "sip:b@example.com")
	msg.AppendHeader("Via", "SIP/2.0/UDP a.example.com;branch=z9hG4bK1, garbage, SIP/2.0/UDP c.example.com;branch=z9hG4bK3")

	want := []string{"z9hG4bK1", "", "z9hG4bK3"}
	if diff := cmp.Diff(msg.ViaBranches(), want); diff != "" {
		t.Errorf("msg.ViaBranches() diff (-got +want):\n%v", diff)
	}
}
