package strategy

import (
	"context"
	"strings"

	"github.com/alexfayers/cc-miner/protocol"
)

// stubAgent is a scripted Exchanger for driving strategies without a real
// websocket connection.
type stubAgent struct {
	sent      []string
	byCommand []stubRule
	fuel      int
}

type stubRule struct {
	contains string
	resp     protocol.Response
}

func alwaysSuccess() *stubAgent {
	return &stubAgent{fuel: 1 << 20}
}

func (s *stubAgent) Exchange(ctx context.Context, snippet string) (protocol.Response, error) {
	s.sent = append(s.sent, snippet)

	if snippet == "return turtle.getFuelLevel()" {
		return protocol.Response{Type: protocol.KindResponse, Status: true, Data: float64(s.fuel)}, nil
	}

	for _, rule := range s.byCommand {
		if strings.Contains(snippet, rule.contains) {
			return rule.resp, nil
		}
	}

	return protocol.Response{Type: protocol.KindResponse, Status: true, Data: nil}, nil
}

func (s *stubAgent) countSent(substr string) int {
	n := 0
	for _, cmd := range s.sent {
		if strings.Contains(cmd, substr) {
			n++
		}
	}
	return n
}
