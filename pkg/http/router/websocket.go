package router

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gobwas/ws"
	"github.com/lintang-b-s/TourPlanner/pkg/concurrent"
	"github.com/lintang-b-s/TourPlanner/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/TourPlanner/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

/*
handleWebsocket. raw tcp listener for the tour websocket api. accepted connections are upgraded and
registered on the hub; their read readiness is watched with epoll (netpoll) so an idle client holds
no goroutine. each ready frame is served by a goroutine from the pool.
*/
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	tourService controllers.TourService, errChan chan error,
) {
	addr := fmt.Sprintf(":%d", config.WebsocketPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		errChan <- err
		return
	}
	api.log.Info(fmt.Sprintf("tour planner websocket API run on port %d", config.WebsocketPort))

	acceptDesc, err := netpoll.HandleListener(ln, netpoll.EventRead|netpoll.EventOneShot)
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	api.poller, err = netpoll.New(nil)
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	api.pool = concurrent.NewPool(viper.GetInt("WEBSOCKET_POOL_SIZE"), viper.GetInt("WEBSOCKET_POOL_QUEUE"))
	api.hub = controllers.NewHub(api.pool, tourService)
	api.pool.Spawn(1)

	// accept is a channel to signal about next incoming connection Accept() results.
	accept := make(chan error, 1)

	err = api.poller.Start(acceptDesc, func(e netpoll.Event) {
		defer api.poller.Resume(acceptDesc)
		err := api.pool.ScheduleTimeout(time.Second, func() {
			conn, err := ln.Accept()
			if err != nil {
				accept <- err
				return
			}

			accept <- nil
			api.handle(ctx, conn)
		})
		if err == nil {
			err = <-accept
		}
		if err != nil {
			// pool saturated or transient accept failure: cool down before the next accept
			var ne net.Error
			if errors.Is(err, concurrent.ErrScheduleTimeout) || (errors.As(err, &ne) && ne.Timeout()) {
				delay := 5 * time.Millisecond
				api.log.Sugar().Infof("accept error: %v; retrying in %s", err, delay)
				time.Sleep(delay)
				return
			}
			api.log.Error("accept error", zap.Error(err))
		}
	})
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	<-ctx.Done()

	api.poller.Stop(acceptDesc)
	ln.Close()
	api.hub.RemoveAllUser()
	api.pool.Close()

	api.log.Info("websocket server stopped")
}

// handle. upgrades conn and serves one tour request per incoming frame until the client hangs up.
func (api *API) handle(ctx context.Context, conn net.Conn) {
	br := bufio.NewReader(conn)

	rw := struct {
		io.Reader
		io.Writer
	}{br, conn}

	hs, err := ws.Upgrade(rw)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("connection name", nameConn(conn)))
		conn.Close()
		return
	}

	api.log.Info("established websocket connection", zap.String("connection name", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)

	desc, err := netpoll.HandleRead(conn)
	if err != nil {
		api.log.Error("netpoll handle error", zap.Error(err))
		api.hub.Remove(user)
		conn.Close()
		return
	}

	err = api.poller.Start(desc, func(ev netpoll.Event) {
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			api.log.Info("user disconnected from websocket server", zap.String("connection name", nameConn(conn)))
			api.poller.Stop(desc)
			api.hub.Remove(user)
			return
		}

		api.hub.Schedule(func() {
			if err := user.SolveTour(ctx); err != nil {
				api.log.Error("error serving websocket tour request", zap.Error(err))
				api.poller.Stop(desc)
				api.hub.Remove(user)
			}
		})
	})
	if err != nil {
		api.log.Error("netpoll start error", zap.Error(err))
		api.hub.Remove(user)
		conn.Close()
	}
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
