package e2e

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/elhassanefek/projectify-sub000/auth"
	"github.com/elhassanefek/projectify-sub000/client"
)

// BaseSuite holds the shared wiring for realtime end-to-end scenarios: it
// loads the environment configuration and mints tokens against the same
// secret the server under test was started with.
type BaseSuite struct {
	suite.Suite
	Config Config
	tokens *auth.TokenManager
}

// SetupSuite loads the environment configuration before running tests. The
// suite is skipped entirely when no server address is configured.
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	if s.Config.ServerAddr == "" {
		s.T().Skip("SERVER_ADDR not set; skipping realtime e2e suite")
	}

	s.tokens = auth.NewTokenManager(s.Config.JWTSecret, s.Config.JWTIssuer, time.Hour)
}

// Connect dials the server under test as the given user and registers the
// teardown.
func (s *BaseSuite) Connect(userID string) *client.Client {
	token, err := s.tokens.Generate(userID, nil)
	s.Require().NoError(err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := client.Dial(ctx, s.Config.ServerAddr, token)
	s.Require().NoError(err, "failed to connect to realtime server at "+s.Config.ServerAddr)
	s.T().Cleanup(func() { _ = c.Close() })
	return c
}

// WaitForEvent drains the client's stream until a frame with the wanted
// event name arrives or the timeout expires.
func (s *BaseSuite) WaitForEvent(c *client.Client, name string, timeout time.Duration) client.Event {
	deadline := time.After(timeout)
	for {
		select {
		case evt, ok := <-c.Events():
			s.Require().True(ok, "connection closed while waiting for %s", name)
			if s.Config.DebugFrames {
				s.T().Logf("FRAME %s: %v", evt.Event, evt.Data)
			}
			if evt.Event == name {
				return evt
			}
		case <-deadline:
			s.FailNowf("timeout", "no %s frame within %v", name, timeout)
			return client.Event{}
		}
	}
}
