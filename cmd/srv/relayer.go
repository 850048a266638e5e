package main

import (
	"fmt"
	"net/http"

	"github.com/quantex-lab/relayer/internal/domain/notification"
	"github.com/quantex-lab/relayer/internal/domain/txqueue"
	"github.com/quantex-lab/relayer/pkg/api/telegram"
	"github.com/quantex-lab/relayer/pkg/blockchain/eth"
	"github.com/quantex-lab/relayer/pkg/ethutil"
	"github.com/quantex-lab/relayer/pkg/xcontext"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/urfave/cli/v2"
)

func (s *srv) startRelayer(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	cfg := xcontext.Configs(s.ctx)
	s.migrateDB()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadRepos()

	client := eth.NewEthClient(cfg.Chain)
	client.Start(s.ctx)

	signer, err := eth.NewTxSigner(cfg.Chain, cfg.Relayer)
	if err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot create signer: %v", err)
		return err
	}

	notifier := notification.NewTelegramNotifier(
		telegram.New(s.ctx, cfg.Telegram), cfg.Telegram.AlertChatID)

	var gate txqueue.ConfirmationGate
	if cfg.Telegram.BotToken != "" {
		gate = txqueue.NewRedisGate(
			signer.Address(), s.redisClient, notifier, cfg.Relayer.ReceiptPollFrequency)
	} else {
		ceiling, ok := ethutil.ParseWei(cfg.Relayer.AutoApproveCeiling)
		if !ok {
			return fmt.Errorf("invalid auto approve ceiling %s", cfg.Relayer.AutoApproveCeiling)
		}

		gate = txqueue.NewAutoGate(ceiling)
	}

	startingNonce, err := client.PendingNonceAt(s.ctx, signer.Address())
	if err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot seed nonce of %s: %v", signer.Address().Hex(), err)
		return err
	}

	queue := txqueue.NewTxQueue(
		cfg.Chain,
		cfg.Relayer,
		startingNonce,
		client,
		signer,
		gate,
		notifier,
		s.txRepo,
		s.publisher,
		s.redisClient,
		cfg.Kafka.Topic,
	)
	queue.Start(s.ctx)

	rpcHandler := rpc.NewServer()
	defer rpcHandler.Stop()
	if err := rpcHandler.RegisterName("relay", txqueue.NewRelayService(queue)); err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot register relay service: %v", err)
		return err
	}

	xcontext.Logger(s.ctx).Infof("Started rpc server of relayer at %s", cfg.RPCSrv.Address())
	httpSrv := &http.Server{
		Handler: rpcHandler,
		Addr:    cfg.RPCSrv.Address(),
	}

	if err := httpSrv.ListenAndServe(); err != nil {
		xcontext.Logger(s.ctx).Errorf("An error occurs when running rpc server: %v", err)
		return err
	}

	return nil
}
