package turtle

import (
	"context"
	"strings"

	"github.com/alexfayers/cc-miner/protocol"
)

// stubAgent is a scripted Exchanger standing in for a real websocket
// connection in unit tests.
type stubAgent struct {
	sent []string
	// responses, consumed in order; if exhausted, the default success
	// response below is returned.
	responses []protocol.Response
	// byCommand overrides responses for snippets containing the given
	// substring, checked in order before falling back to responses.
	byCommand []stubRule
}

type stubRule struct {
	contains string
	resp     protocol.Response
	err      error
}

func alwaysSuccess() *stubAgent {
	return &stubAgent{}
}

func (s *stubAgent) Exchange(ctx context.Context, snippet string) (protocol.Response, error) {
	s.sent = append(s.sent, snippet)

	for _, rule := range s.byCommand {
		if strings.Contains(snippet, rule.contains) {
			if rule.err != nil {
				return protocol.Response{}, rule.err
			}
			return rule.resp, nil
		}
	}

	if len(s.responses) > 0 {
		resp := s.responses[0]
		s.responses = s.responses[1:]
		return resp, nil
	}

	return protocol.Response{Type: protocol.KindResponse, Status: true, Data: nil}, nil
}
