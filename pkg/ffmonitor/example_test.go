package ffmonitor_test

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/OpenFusionProject/ffmonitor/pkg/ffmonitor"
	"github.com/OpenFusionProject/ffmonitor/pkg/ffmonitor/event"
)

// ExampleNew demonstrates buffered mode: drain updates with Poll.
func ExampleNew() {
	monitor, err := ffmonitor.New("127.0.0.1:8003")
	if err != nil {
		log.Fatal(err)
	}
	defer monitor.Close()

	for monitor.IsConnected() {
		update, ok := monitor.Poll()
		if !ok {
			time.Sleep(500 * time.Millisecond)
			continue
		}
		fmt.Printf("players: %d\n", update.PlayerCount())
		for _, ev := range update.Events() {
			fmt.Printf("\t%s\n", ev)
		}
	}
}

// ExampleNewWithCallback demonstrates callback mode: notifications arrive on
// the worker goroutine.
func ExampleNewWithCallback() {
	monitor, err := ffmonitor.NewWithCallback("127.0.0.1:8003",
		func(n ffmonitor.MonitorNotification) {
			switch n.Kind {
			case ffmonitor.NotificationConnected:
				fmt.Println("connected")
			case ffmonitor.NotificationUpdated:
				fmt.Printf("players: %d\n", n.Update.PlayerCount())
			case ffmonitor.NotificationDisconnected:
				fmt.Println("disconnected")
			}
		})
	if err != nil {
		log.Fatal(err)
	}
	defer monitor.Close()
}

// ExampleParseStream parses a captured monitor stream offline.
func ExampleParseStream() {
	capture := "begin\n" +
		"player 10 -20 Bob\n" +
		"chat [FreeChat] Bob: hi\n" +
		"end\n"

	for update, err := range ffmonitor.ParseStream(context.Background(), strings.NewReader(capture)) {
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("players: %d\n", update.PlayerCount())
		for _, ev := range update.Events() {
			if chat, ok := ev.(ffmonitor.ChatEvent); ok {
				fmt.Printf("%s says %q\n", chat.From, chat.Message)
			}
		}
	}
	// Output:
	// players: 1
	// Bob says "hi"
}

// ExampleMonitorUpdate_String shows that updates serialize back to wire form.
func ExampleMonitorUpdate_String() {
	var update ffmonitor.MonitorUpdate
	update.AddEvent(event.PlayerEvent{X: 10, Y: -20, Name: "Captain Courage"})
	update.AddEvent(event.ChatEvent{Kind: event.FreeChat, From: "Captain Courage", Message: "Hello world!"})

	fmt.Println(update)
	// Output:
	// begin
	// player 10 -20 Captain Courage
	// chat [freechat] Captain Courage: Hello world!
	// end
}
