package commands

import (
	"go.uber.org/zap"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/store"
	"tableflip.dev/snip/pkg/viewstate"
)

// session is the configured backend, service, and view state for one
// command invocation.
type session struct {
	Config  store.Config
	Service *app.Service
	View    *viewstate.ViewState
}

// openSession loads config and the persistence backend. The view state is
// loaded only when withView is set.
func openSession(withView bool) (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	s := &session{
		Config:  cfg,
		Service: app.New(p, logger),
	}
	if withView {
		kv, err := store.LoadViewStore(cfg)
		if err != nil {
			_ = p.Close()
			return nil, err
		}
		if s.View, err = viewstate.Load(kv); err != nil {
			// A corrupt view file should not lock the user out of their data.
			logger.Warn("view state unreadable, using defaults", zap.Error(err))
			s.View, _ = viewstate.Load(nil)
		}
	}
	return s, nil
}

func (s *session) Close() {
	if s == nil || s.Service == nil || s.Service.Persistence == nil {
		return
	}
	if err := s.Service.Persistence.Close(); err != nil {
		logger.Warn("close store", zap.Error(err))
	}
}
