// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"net"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dataspace-connector/dataplane/internal/config"
	"github.com/dataspace-connector/dataplane/internal/logger"
	"github.com/dataspace-connector/dataplane/internal/proxy"
	"github.com/dataspace-connector/dataplane/internal/registration"
	"github.com/dataspace-connector/dataplane/internal/signaling"
)

type server struct {
	listeners []*httpListener
	registrar *registration.Registrar
	logger    *logger.Logger
}

// New builds the data-plane's three HTTP listeners — Signaling API,
// token-renewal/JWKS, and public proxy — bound to the addresses cfg
// names, plus the background control-plane registration loop.
func New(signalingHandler *signaling.Handler, proxyHandler *proxy.Handler, cfg *config.Config, registrar *registration.Registrar, log *logger.Logger) Server {
	listeners := []*httpListener{
		newListener("signaling", hostPort(cfg.Signaling.Bind, cfg.Signaling.Port), signalingHandler.DataflowsRouter(), log),
		newListener("renewal", hostPort(cfg.Proxy.Renewal.Bind, cfg.Proxy.Renewal.Port), signalingHandler.RenewalRouter(), log),
		newListener("proxy", hostPort(cfg.Proxy.Bind, cfg.Proxy.Port), proxyHandler.Router(), log),
	}

	return &server{listeners: listeners, registrar: registrar, logger: log}
}

func hostPort(bind string, port uint16) string {
	return net.JoinHostPort(bind, strconv.Itoa(int(port)))
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Error().Err(err).Msg("error running server")
	}
}

func (s *server) Shutdown() {
	for _, l := range s.listeners {
		l.Shutdown()
	}
}

func (s *server) run() error {
	if len(s.listeners) == 0 {
		return errNoServersAreCreated
	}

	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()
		s.Shutdown()
		close(idleConnectionsClosed)
	}()

	if s.registrar != nil {
		go s.registrar.Run(ctx)
	}

	for _, l := range s.listeners {
		s.logger.Info().Str("listener", l.name).Str("addr", l.server.Addr).Msg("launching listener")
		go l.RunServer()
	}

	<-idleConnectionsClosed
	s.logger.Info().Msg("server shutdown gracefully")

	return nil
}
