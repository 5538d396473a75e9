package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/xavierca1/ligue-funnel/internal/config"
	"github.com/xavierca1/ligue-funnel/internal/format"
	"github.com/xavierca1/ligue-funnel/internal/infra/integration/kommo"
	"github.com/xavierca1/ligue-funnel/internal/usecase"
)

// Envia um dos leads de exemplo para o Kommo: go run ./cmd/kommo-check lead-3
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Aviso: arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	cfg := config.Load()
	if cfg.KommoAPIToken == "" {
		log.Fatal("❌ KOMMO_API_TOKEN deve estar configurado no .env")
	}

	leadID := "lead-1"
	if len(os.Args) > 1 {
		leadID = os.Args[1]
	}

	var input *kommo.CreateLeadInput
	for _, l := range usecase.BuiltinDefaults().Leads {
		if l.ID == leadID {
			input = &kommo.CreateLeadInput{
				LeadID:  l.ID,
				Name:    l.Name,
				Company: l.Company,
				Email:   l.Email,
				Phone:   l.Phone,
				Price:   l.TotalValue,
			}
			break
		}
	}
	if input == nil {
		log.Fatalf("❌ Lead de exemplo %q não existe", leadID)
	}

	fmt.Println("🔄 Criando lead no Kommo...")
	fmt.Printf("📋 Dados:\n")
	fmt.Printf("   Nome: %s\n", input.Name)
	fmt.Printf("   Empresa: %s\n", input.Company)
	fmt.Printf("   Telefone: %s\n", input.Phone)
	fmt.Printf("   Email: %s\n", input.Email)
	fmt.Printf("   Valor: %s\n\n", format.Currency(input.Price))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := kommo.NewClient(cfg.KommoAPIToken, cfg.KommoBaseURL)
	id, err := client.CreateLead(ctx, *input)
	if err != nil {
		log.Fatalf("Erro ao criar lead no Kommo: %v", err)
	}

	fmt.Printf("Lead criado com sucesso no Kommo!\n")
	fmt.Printf(" ID do Lead: #%d\n", id)
	fmt.Printf(" Link: %s/leads/detail/%d\n", strings.TrimRight(cfg.KommoBaseURL, "/"), id)
}
