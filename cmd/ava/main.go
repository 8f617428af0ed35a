// Command ava is the interactive terminal assistant.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bobmcallan/ava/internal/app"
	"github.com/bobmcallan/ava/internal/common"
)

func main() {
	configPath := os.Getenv("AVA_CONFIG")

	a, err := app.NewApp(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	common.PrintBanner(a.Config, a.Logger)
	fmt.Println("Çıkış: 'exit' | Hafızayı temizlemek için: 'sıfırla'")
	fmt.Println()

	runREPL(a)

	common.PrintShutdownBanner(a.Logger)
}

func runREPL(a *app.App) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("Siz: ")
		if !scanner.Scan() {
			return
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "çıkış", "quit":
			return
		case "sıfırla", "reset":
			a.Dispatcher.Memory().Reset()
			fmt.Println("Hafıza temizlendi.")
			fmt.Println()
			continue
		}

		reply, err := a.Dispatcher.Reply(ctx, input)
		if err != nil {
			a.Logger.Error().Err(err).Msg("Turn failed")
			fmt.Println("Bir sorun oluştu, lütfen tekrar deneyin.")
			fmt.Println()
			continue
		}

		fmt.Println(reply)
		fmt.Println()
	}
}
