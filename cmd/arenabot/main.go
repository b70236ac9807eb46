package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"arena-server/internal/agent"
	"arena-server/pkg/api"
	"arena-server/pkg/config"
	"arena-server/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

// arenabot запускает N headless-ботов: первый создаёт партию и стартует игру,
// когда к нему присоединятся остальные.
func main() {
	if err := config.Load(); err != nil {
		logger.Log.WithError(err).Warn("Failed to load .env")
	}

	var (
		url       string
		count     int
		codecName string
		quiet     bool
	)
	flag.StringVar(&url, "url", config.String("ARENA_URL", "ws://localhost:8080/ws"), "Server WebSocket URL")
	flag.IntVar(&count, "n", 2, "Number of bots (1..4)")
	flag.StringVar(&codecName, "codec", "json", "Wire codec: json or msgpack")
	flag.BoolVar(&quiet, "quiet", false, "Disable bot logs")
	flag.Parse()

	if quiet {
		logger.Silence()
	}

	codec, err := api.CodecByName(codecName)
	if err != nil {
		logger.Log.WithError(err).Fatal("Bad codec")
	}
	if count < 1 {
		count = 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		bot := agent.NewBot(fmt.Sprintf("Bot-%d", i+1), i == 0, count)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := runBot(ctx, url, codec, bot); err != nil {
				logger.Log.WithError(err).WithField("bot", bot.Name).Error("Bot stopped")
			}
		}()
		// лидер должен успеть создать партию до того, как остальные получат partyList
		if i == 0 {
			time.Sleep(300 * time.Millisecond)
		}
	}
	wg.Wait()
}

func runBot(ctx context.Context, url string, codec api.Codec, bot *agent.Bot) error {
	dialURL := url + "?codec=" + codec.Name()
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, dialURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", dialURL, err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		conn.Close()
	}()

	frame := websocket.TextMessage
	if codec.Binary() {
		frame = websocket.BinaryMessage
	}

	log := logger.WithComponent("arenabot").WithField("bot", bot.Name)
	log.Info("Connected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		env, err := codec.DecodeCommand(data)
		if err != nil {
			log.WithError(err).Warn("Bad frame")
			continue
		}

		for _, cmd := range bot.Handle(env.Action, env.Payload, codec) {
			out, err := api.EncodeCommand(codec, cmd.Action, 0, cmd.Payload)
			if err != nil {
				log.WithError(err).WithField("action", cmd.Action).Error("Encode failed")
				continue
			}
			if err := conn.WriteMessage(frame, out); err != nil {
				return err
			}
			log.WithFields(logrus.Fields{"action": cmd.Action}).Debug("Sent")
		}
	}
}
