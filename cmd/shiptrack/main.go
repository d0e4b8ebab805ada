package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nderose7/shiptrack-app/credstore"
	"github.com/nderose7/shiptrack-app/models"
	"github.com/nderose7/shiptrack-app/scan"
	"github.com/nderose7/shiptrack-app/strapi"
	"github.com/nderose7/shiptrack-app/workflow"
)

const usage = `usage: shiptrack <command> [args]

commands:
  login <email> <password>     authenticate and store the session token
  logout                       delete the stored session token
  products                     list shippable products
  ship [serial]                quote and purchase a label for a product
  fetch-label <url> <file>     download a purchased label image
`

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg := LoadConfig()

	store, err := credstore.NewFileStore(cfg.CredentialFile, []byte(cfg.CredentialSecret))
	if err != nil {
		logger.Fatal("Failed to open credential store", zap.Error(err))
	}
	client := strapi.New(cfg.BaseURL, store, logger)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "login":
		if len(os.Args) != 4 {
			fmt.Fprintln(os.Stderr, "usage: shiptrack login <email> <password>")
			os.Exit(2)
		}
		if err := client.Login(ctx, os.Args[2], os.Args[3]); err != nil {
			logger.Fatal("Login failed", zap.Error(err))
		}
		fmt.Println("Logged in.")

	case "logout":
		if err := client.Logout(); err != nil {
			logger.Fatal("Logout failed", zap.Error(err))
		}
		fmt.Println("Logged out.")

	case "products":
		entries, err := client.FetchProducts(ctx)
		if err != nil {
			logger.Fatal("Failed to fetch products", zap.Error(err))
		}
		for _, e := range entries {
			fmt.Printf("%-10s %-30s %dx%dx%d in, %d oz\n",
				e.Serial, e.Name, e.Length, e.Width, e.Height, e.Weight)
		}

	case "ship":
		serial := ""
		if len(os.Args) > 2 {
			serial = os.Args[2]
		}
		if err := runShip(ctx, client, cfg, serial, logger); err != nil {
			logger.Fatal("Ship failed", zap.Error(err))
		}

	case "fetch-label":
		if len(os.Args) != 4 {
			fmt.Fprintln(os.Stderr, "usage: shiptrack fetch-label <url> <file>")
			os.Exit(2)
		}
		data, err := client.FetchLabel(ctx, os.Args[2])
		if err != nil {
			logger.Fatal("Failed to fetch label", zap.Error(err))
		}
		if err := os.WriteFile(os.Args[3], data, 0o644); err != nil {
			logger.Fatal("Failed to write label file", zap.Error(err))
		}
		fmt.Printf("Label saved to %s\n", os.Args[3])

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

// runShip walks one product through the quote-and-purchase workflow:
// resolve the serial, collect the destination, fetch rates, pick one,
// buy the label.
func runShip(ctx context.Context, client *strapi.Client, cfg *Config, serial string, logger *zap.Logger) error {
	reader := bufio.NewReader(os.Stdin)

	if serial == "" {
		fmt.Println("Scan serial number (enter manually):")
		s, err := scan.NewLineScanner(os.Stdin).Scan(ctx)
		if err != nil {
			return fmt.Errorf("read serial: %w", err)
		}
		serial = s
	}

	entry, err := workflow.FindProductBySerial(ctx, client, serial)
	if err != nil {
		return err
	}
	if entry == nil {
		fmt.Printf("No product found for serial %q.\n", serial)
		return nil
	}
	fmt.Printf("Product to ship: %s (serial %s)\n", entry.Name, entry.Serial)

	dest := promptDestination(reader)
	req := workflow.BuildShipmentRequest(entry.Product, cfg.OriginAddress(), dest, "")

	wf := workflow.New(client, logger)

	quote, err := wf.RequestQuote(ctx, req)
	if err != nil {
		return err
	}

	fmt.Println("Shipping options:")
	for i, r := range quote.Rates {
		if r.DeliveryDays != nil {
			fmt.Printf("  %d) %s %s (%d days): $%s\n", i+1, r.Carrier, r.Service, *r.DeliveryDays, r.Rate)
		} else {
			fmt.Printf("  %d) %s %s: $%s\n", i+1, r.Carrier, r.Service, r.Rate)
		}
	}

	choice := prompt(reader, "Select option", "1")
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(quote.Rates) {
		return fmt.Errorf("invalid option %q", choice)
	}
	if err := wf.SelectRate(quote.Rates[idx-1].ID); err != nil {
		return err
	}

	confirm := prompt(reader, "Purchase label? This will be billed (y/N)", "N")
	if !strings.EqualFold(confirm, "y") {
		fmt.Println("Purchase cancelled.")
		return nil
	}

	label, err := wf.Purchase(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Label purchased: %s\n", label.LabelURL)
	fmt.Println("Run `shiptrack fetch-label` to download the image.")
	return nil
}

func promptDestination(reader *bufio.Reader) models.Address {
	fmt.Println("Destination address:")
	return models.Address{
		Name:    prompt(reader, "  Name", ""),
		Street1: prompt(reader, "  Address", ""),
		Street2: prompt(reader, "  Suite/Apt", ""),
		City:    prompt(reader, "  City", ""),
		State:   prompt(reader, "  State", ""),
		Zip:     prompt(reader, "  Zip Code", ""),
		Country: prompt(reader, "  Country", "US"),
		Email:   prompt(reader, "  Email", "example@example.com"),
	}
}

func prompt(reader *bufio.Reader, label, fallback string) string {
	if fallback != "" {
		fmt.Printf("%s [%s]: ", label, fallback)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}
