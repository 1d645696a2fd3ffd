// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/dataspace-connector/dataplane/internal/config"
	"github.com/dataspace-connector/dataplane/internal/edr"
	"github.com/dataspace-connector/dataplane/internal/logger"
	"github.com/dataspace-connector/dataplane/internal/proxy"
	"github.com/dataspace-connector/dataplane/internal/refresh"
	"github.com/dataspace-connector/dataplane/internal/registration"
	"github.com/dataspace-connector/dataplane/internal/server"
	"github.com/dataspace-connector/dataplane/internal/signaling"
	"github.com/dataspace-connector/dataplane/internal/store"
	"github.com/dataspace-connector/dataplane/internal/token"
	"github.com/dataspace-connector/dataplane/internal/transfer"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("dataplane")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Info().Str("component_id", cfg.ComponentID).Msg("starting data-plane")
	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	stores, err := store.NewStores(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting stores")
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Error().Err(err).Msg("error closing stores")
		}
	}()

	engine, err := token.New(token.Config{
		EncodingKeyPEM: cfg.Proxy.Keys.PrivateKey,
		DecodingKeyPEM: cfg.Proxy.Keys.PublicKey,
		KID:            cfg.Proxy.Keys.KID,
		Audience:       cfg.Proxy.ProxyURL,
		Issuer:         cfg.Proxy.Issuer,
		Leeway:         cfg.Proxy.TokenLeeway,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error building token engine")
	}

	edrMgr := edr.New(engine, edr.Config{
		Issuer:               cfg.Proxy.Issuer,
		ProxyURL:             cfg.Proxy.ProxyURL,
		TokenURL:             cfg.Proxy.TokenURL,
		JWKSURL:              cfg.Proxy.JWKSURL,
		TokenDuration:        cfg.Proxy.TokenDuration,
		RefreshTokenDuration: cfg.Proxy.RefreshTokenDuration,
	})

	transferMgr := transfer.New(stores.Transfers, stores.Edrs, edrMgr, log)
	refreshMgr := refresh.New(engine, edrMgr, stores.Transfers, stores.Edrs)

	signalingHandler := signaling.NewHandler(transferMgr, refreshMgr, engine, log)
	proxyHandler := proxy.NewHandler(stores.Transfers, stores.Edrs, engine, log)

	registrar := registration.New(cfg.ComponentID, cfg.Signaling.SignalingURL, cfg.Signaling.ControlPlaneURL, log)

	srv := server.New(signalingHandler, proxyHandler, cfg, registrar, log)
	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
