package service

type ServiceOpt func(*Service)

// WithRequireOnline makes give, set and take fail with NotOnline when the
// target has no session.
func WithRequireOnline(require bool) ServiceOpt {
	return func(s *Service) {
		s.requireOnline = require
	}
}

func WithNotifier(n Notifier) ServiceOpt {
	return func(s *Service) {
		s.notifier = n
	}
}
