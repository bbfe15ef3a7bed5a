// Command csctl is a dev CLI for claimsift maintenance and debugging tasks.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/chromedp/chromedp"
	"github.com/pkg/browser"

	browseropts "github.com/claimsift/claimsift/internal/browser"
	"github.com/claimsift/claimsift/internal/config"
	"github.com/claimsift/claimsift/internal/session"
	"github.com/claimsift/claimsift/internal/types"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "bot-test":
		runBotTest()
	case "open":
		if len(os.Args) < 3 {
			fmt.Println("Usage: csctl open <config|cache|sessions>")
			os.Exit(1)
		}
		runOpen(os.Args[2])
	case "config":
		if len(os.Args) < 3 || os.Args[2] != "init" {
			fmt.Println("Usage: csctl config init")
			os.Exit(1)
		}
		runConfigInit()
	case "sessions":
		switch {
		case len(os.Args) >= 3 && os.Args[2] == "status":
			runSessionsStatus()
		case len(os.Args) >= 4 && os.Args[2] == "clear":
			runSessionsClear(os.Args[3])
		default:
			fmt.Println("Usage: csctl sessions <status|clear <twitter|instagram|facebook>>")
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: csctl <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  bot-test                  Open bot.sannysoft.com to audit browser fingerprint")
	fmt.Println("  config init               Write a default config file if none exists")
	fmt.Println("  open config               Open config file in default editor")
	fmt.Println("  open cache                Open cache directory in file explorer")
	fmt.Println("  open sessions             Open browser sessions directory in file explorer")
	fmt.Println("  sessions status           Show which platforms have a saved login")
	fmt.Println("  sessions clear <platform> Delete the saved login session for a platform")
}

func runBotTest() {
	log.Println("Opening bot.sannysoft.com with stealth browser options...")

	opts := browseropts.Options(false, "") // non-headless so you can see it

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	go func() {
		err := chromedp.Run(ctx,
			chromedp.Navigate("https://bot.sannysoft.com"),
		)
		if err != nil {
			log.Printf("Failed to navigate: %v", err)
		}
	}()

	fmt.Println("Press Enter to end program...")
	fmt.Scanln()

	log.Println("Done.")
}

func runOpen(target string) {
	var path string
	var err error

	switch target {
	case "config":
		path, err = config.ConfigPath()
	case "cache":
		path, err = config.CacheDir()
	case "sessions":
		path, err = session.DefaultRoot()
	default:
		fmt.Printf("Unknown target: %s\n", target)
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("Failed to get path: %v", err)
	}

	if err := browser.OpenFile(path); err != nil {
		log.Fatalf("Failed to open: %v", err)
	}
}

func runConfigInit() {
	path, err := config.ConfigPath()
	if err != nil {
		log.Fatalf("Failed to get config path: %v", err)
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config already exists at %s\n", path)
		return
	}

	if err := config.Default().Save(); err != nil {
		log.Fatalf("Failed to write config: %v", err)
	}
	fmt.Printf("Wrote default config to %s\n", path)
}

func runSessionsStatus() {
	root, err := session.DefaultRoot()
	if err != nil {
		log.Fatalf("Failed to get sessions directory: %v", err)
	}

	store := session.NewStore(root)
	for _, p := range []types.Platform{types.PlatformTwitter, types.PlatformInstagram, types.PlatformFacebook} {
		status := "no saved login"
		if store.HasSession(p) {
			status = "logged in"
		}
		fmt.Printf("  %-10s %s\n", p, status)
	}
}

func runSessionsClear(name string) {
	root, err := session.DefaultRoot()
	if err != nil {
		log.Fatalf("Failed to get sessions directory: %v", err)
	}

	store := session.NewStore(root)
	p := types.Platform(name)

	if err := store.Clear(p); err != nil {
		log.Fatalf("Failed to clear session: %v", err)
	}
	fmt.Printf("Cleared %s session. You will be asked to log in again on the next scrape.\n", name)
}
