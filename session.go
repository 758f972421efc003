package totalconnect

import (
	"context"
	"fmt"
)

type SessionState uint8

const (
	SessionUnauthenticated SessionState = iota
	SessionAuthenticating
	SessionAuthenticated
	SessionExpired
	SessionRejected
)

func (s SessionState) String() string {
	switch s {
	case SessionAuthenticating:
		return "authenticating"
	case SessionAuthenticated:
		return "authenticated"
	case SessionExpired:
		return "expired"
	case SessionRejected:
		return "rejected"
	default:
		return "unauthenticated"
	}
}

type credentials struct {
	username   string
	password   string
	appID      string
	appVersion string
}

// session owns the authentication state of one client.
type session struct {
	transport        Transport
	creds            credentials
	token            string
	state            SessionState
	loggedIn         bool
	validCredentials bool
}

func newSession(transport Transport, creds credentials) *session {
	return &session{
		transport: transport,
		creds:     creds,
	}
}

// authenticate performs a single login call.
func (s *session) authenticate(ctx context.Context) error {
	if s.state == SessionRejected {
		return fmt.Errorf("could not authenticate %s: %w", s.creds.username, ErrAuthentication)
	}

	prev := s.state
	s.state = SessionAuthenticating
	log.Debug("authenticate", "username", s.creds.username)

	res, err := s.transport.Call(
		ctx,
		opLogin,
		s.creds.username,
		s.creds.password,
		s.creds.appID,
		s.creds.appVersion,
	)
	if err != nil {
		s.state = prev
		return &retriableError{err: fmt.Errorf("could not authenticate: %w", err)}
	}

	switch res.Outcome() {
	case OutcomeSuccess:
	case OutcomeAuthenticationFailure:
		s.token = ""
		s.loggedIn = false
		s.validCredentials = false
		s.state = SessionRejected
		log.Error("invalid credentials", "username", s.creds.username, "code", res.ResultCode)
		return fmt.Errorf("could not authenticate %s: %w: %s", s.creds.username, ErrAuthentication, res.ResultCode)
	case OutcomeSessionInvalid:
		s.state = prev
		return &BadResultCodeError{Operation: opLogin, Code: res.ResultCode, Data: res.ResultData}
	default:
		s.state = prev
		return outcomeError(opLogin, res)
	}

	var reply loginReply
	if err := decodePayload(opLogin, res, &reply, loginRequired...); err != nil {
		s.state = prev
		return err
	}

	s.token = reply.SessionID
	s.loggedIn = true
	s.validCredentials = true
	s.state = SessionAuthenticated
	log.Info("logged in", "username", s.creds.username)
	return nil
}

// invalidate drops the current token after the service reported it as
// expired. Credentials are kept so the session can be re-established.
func (s *session) invalidate() {
	log.Debug("session invalidated", "username", s.creds.username)
	s.token = ""
	s.loggedIn = false
	s.state = SessionExpired
}

// logout ends the session on the service side. The local session is reset
// even if the call fails.
func (s *session) logout(ctx context.Context) error {
	if !s.loggedIn {
		return nil
	}
	token := s.token
	s.token = ""
	s.loggedIn = false
	s.state = SessionUnauthenticated

	res, err := s.transport.Call(ctx, opLogout, token)
	if err != nil {
		return fmt.Errorf("could not logout: %w", err)
	}
	if err := outcomeError(opLogout, res); err != nil {
		return fmt.Errorf("could not logout: %w", err)
	}
	log.Info("logged out", "username", s.creds.username)
	return nil
}

func (s *session) isLoggedIn() bool {
	return s.loggedIn
}

func (s *session) isValidCredentials() bool {
	return s.validCredentials
}
