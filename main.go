package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"InkBoard/internal/ink"
	inknet "InkBoard/internal/net"
	"InkBoard/internal/ui"
)

const (
	customURLScheme = "inkboard://"
	port            = 8888
)

func main() {
	args := os.Args
	if len(args) > 1 && strings.HasPrefix(args[1], customURLScheme) {
		runClient(args[1])
	} else {
		runHost()
	}
}

func runHost() {
	log.Println("Starting as HOST")
	board := ui.NewBoardWidget(ink.DefaultOptions())
	board.SetLocalClientID("host")

	hub := inknet.NewHub()

	// When the host finishes a stroke, it is already on screen; just relay.
	board.OnNewGroup = func(g ink.PointGroup) {
		hub.Broadcast(inknet.Message{Type: inknet.MessageDraw, Group: &g, OwnerID: "host"}, nil)
	}
	board.OnClear = func() {
		log.Println("[host] broadcasting clear")
		hub.Broadcast(inknet.Message{Type: inknet.MessageClear, OwnerID: "host"}, nil)
	}

	// Relay client messages to everyone else and mirror them locally.
	hub.OnMessage = func(msg inknet.Message, from *websocket.Conn) {
		switch msg.Type {
		case inknet.MessageDraw:
			if msg.Group != nil {
				board.AddRemoteGroup(*msg.Group)
			}
			hub.Broadcast(msg, from)
		case inknet.MessageClear:
			board.ClearRemote()
			hub.Broadcast(msg, from)
		}
	}

	go func() {
		if err := hub.Serve(port); err != nil {
			log.Fatalf("Failed to start hub: %v", err)
		}
	}()

	if server, err := inknet.Advertise(port); err != nil {
		log.Printf("[mdns] advertise failed: %v", err)
	} else {
		defer server.Shutdown()
	}

	hostIP, err := inknet.OutgoingIP()
	if err != nil {
		hostIP = "127.0.0.1"
	}
	shareLink := fmt.Sprintf("%s%s:%d", customURLScheme, hostIP, port)
	ui.RunApp(shareLink, board)
}

func runClient(link string) {
	log.Println("Starting as CLIENT")
	board := ui.NewBoardWidget(ink.DefaultOptions())
	board.SetLocalClientID(uuid.NewString())
	go connectToHost(link, board)
	ui.RunApp("", board)
}

func connectToHost(link string, board *ui.BoardWidget) {
	address := strings.TrimPrefix(link, customURLScheme)
	address = strings.TrimSuffix(address, "/")

	// An empty address after the scheme means "find a board on the LAN".
	if address == "" {
		found := make(chan string, 1)
		if err := inknet.Browse(func(addr string) {
			select {
			case found <- addr:
			default:
			}
		}); err != nil {
			board.SetStatus(fmt.Sprintf("Discovery failed: %v", err))
			return
		}
		select {
		case address = <-found:
		default:
			board.SetStatus("No board found on the local network")
			return
		}
	}

	client, err := inknet.Dial(address)
	if err != nil {
		board.SetStatus(fmt.Sprintf("Connection failed: %v", err))
		return
	}
	defer client.Close()

	board.SetStatus("Connected to host as " + board.LocalClientID)
	log.Println("Client connected successfully to", address)

	board.OnNewGroup = func(g ink.PointGroup) {
		msg := inknet.Message{Type: inknet.MessageDraw, Group: &g, OwnerID: board.LocalClientID}
		if err := client.Send(msg); err != nil {
			log.Printf("Failed to send drawing: %v", err)
		}
	}
	board.OnClear = func() {
		msg := inknet.Message{Type: inknet.MessageClear, OwnerID: board.LocalClientID}
		if err := client.Send(msg); err != nil {
			log.Printf("Failed to send clear message: %v", err)
		}
	}

	err = client.Listen(func(msg inknet.Message) {
		switch msg.Type {
		case inknet.MessageDraw:
			// Our own strokes come back from the relay; the board drops
			// duplicates by group ID.
			if msg.Group != nil {
				board.AddRemoteGroup(*msg.Group)
			}
		case inknet.MessageClear:
			board.ClearRemote()
		}
	})
	board.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
}
