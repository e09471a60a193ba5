// Watch - terminal tail for a running voicedesk dashboard.
// Connects to the demo's log websocket and prints lines as they happen;
// with -status it follows status snapshots instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"

	"voicedesk/internal/log"
	"voicedesk/pkg/protocol"
)

func main() {
	host := flag.String("host", "localhost:8080", "dashboard host:port")
	status := flag.Bool("status", false, "follow status snapshots instead of the log")
	level := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*level)

	path := "/ws/log"
	if *status {
		path = "/ws/status"
	}
	url := "ws://" + *host + path

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect %s: %v\n", url, err)
		os.Exit(1)
	}
	defer conn.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	fmt.Printf("watching %s\n", url)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			fmt.Fprintf(os.Stderr, "connection closed: %v\n", err)
			os.Exit(1)
		}

		msg, err := protocol.ParseMessage(data)
		if err != nil {
			continue
		}
		switch msg.Type {
		case protocol.TypeLog:
			var entry protocol.LogData
			if err := msg.ParseData(&entry); err == nil {
				fmt.Printf("%-12s %s\n", entry.Kind, entry.Text)
			}
		case protocol.TypeStatus:
			var st protocol.StatusData
			if err := msg.ParseData(&st); err == nil {
				fmt.Printf("%s alive=%t calibrated=%t stage=%s heard=%q\n",
					st.App, st.Alive, st.Calibrated, st.Stage, st.LastHeard)
			}
		}
	}
}
