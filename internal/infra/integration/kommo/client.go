package kommo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/ligue-funnel/internal/entity"
)

var ErrNotConfigured = errors.New("kommo não configurado")

type Client struct {
	apiToken   string
	baseURL    string
	httpClient *http.Client
}

// NewClient recebe a URL da conta (ex: https://empresa.kommo.com).
func NewClient(apiToken, baseURL string) *Client {
	return &Client{
		apiToken:   apiToken,
		baseURL:    strings.TrimRight(baseURL, "/") + "/api/v4",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.apiToken != ""
}

// CreateLead cria (ou reaproveita) o contato e abre um lead no Kommo.
func (c *Client) CreateLead(ctx context.Context, input CreateLeadInput) (int, error) {
	if !c.Configured() {
		log.Println("⚠️ Kommo: API_TOKEN não configurado")
		return 0, ErrNotConfigured
	}

	// Primeiro, criar ou buscar contato
	contactID, err := c.findOrCreateContact(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("erro ao criar/buscar contato: %w", err)
	}

	name := input.Name
	if input.Company != "" {
		name = fmt.Sprintf("%s - %s", input.Company, input.Name)
	}
	leadData := []map[string]interface{}{
		{
			"name":  name,
			"price": input.Price.Round(0).IntPart(),
			"_embedded": map[string]interface{}{
				"tags": []map[string]interface{}{
					{"name": "funil_ganhou"},
					{"name": "funil:" + input.LeadID},
				},
				"contacts": []map[string]interface{}{
					{"id": contactID},
				},
			},
		},
	}

	var result embeddedLeads
	if err := c.do(ctx, http.MethodPost, "/leads", leadData, &result, http.StatusOK); err != nil {
		return 0, fmt.Errorf("erro ao criar lead: %w", err)
	}
	if len(result.Embedded.Leads) == 0 {
		return 0, fmt.Errorf("lead não criado")
	}

	kommoID := result.Embedded.Leads[0].ID
	log.Printf("✅ Kommo: Lead criado #%d para %s (%s)", kommoID, input.Name, input.Company)
	return kommoID, nil
}

func (c *Client) findOrCreateContact(ctx context.Context, input CreateLeadInput) (int, error) {
	// Buscar contato por telefone
	if phone := entity.PhoneDigits(input.Phone); phone != "" {
		contactID, err := c.findContactByPhone(ctx, phone)
		if err == nil && contactID > 0 {
			log.Printf("📱 Kommo: Contato existente encontrado: %d", contactID)
			return contactID, nil
		}
	}

	// Se não encontrou, criar novo contato
	return c.createContact(ctx, input)
}

func (c *Client) findContactByPhone(ctx context.Context, phone string) (int, error) {
	var result embeddedContacts
	path := "/contacts?query=" + url.QueryEscape(phone)
	// 204 = nenhum contato
	if err := c.do(ctx, http.MethodGet, path, nil, &result, http.StatusOK); err != nil {
		return 0, err
	}
	if len(result.Embedded.Contacts) > 0 {
		return result.Embedded.Contacts[0].ID, nil
	}
	return 0, fmt.Errorf("contato não encontrado")
}

func (c *Client) createContact(ctx context.Context, input CreateLeadInput) (int, error) {
	fields := []map[string]interface{}{}
	if phone := entity.PhoneDigits(input.Phone); phone != "" {
		fields = append(fields, map[string]interface{}{
			"field_code": "PHONE",
			"values":     []map[string]interface{}{{"value": phone, "enum_code": "WORK"}},
		})
	}
	if input.Email != "" {
		fields = append(fields, map[string]interface{}{
			"field_code": "EMAIL",
			"values":     []map[string]interface{}{{"value": input.Email, "enum_code": "WORK"}},
		})
	}
	contactData := []map[string]interface{}{
		{
			"name":                 input.Name,
			"custom_fields_values": fields,
		},
	}

	var result embeddedContacts
	if err := c.do(ctx, http.MethodPost, "/contacts", contactData, &result, http.StatusOK, http.StatusCreated); err != nil {
		return 0, fmt.Errorf("erro ao criar contato: %w", err)
	}
	if len(result.Embedded.Contacts) == 0 {
		return 0, fmt.Errorf("erro ao obter ID do contato criado")
	}

	contactID := result.Embedded.Contacts[0].ID
	log.Printf("✅ Kommo: Novo contato criado: %d", contactID)
	return contactID, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}, okStatus ...int) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	c.addAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if !statusIn(resp.StatusCode, okStatus) {
		return fmt.Errorf("status %d - %s", resp.StatusCode, string(respBody))
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

func statusIn(code int, accepted []int) bool {
	for _, s := range accepted {
		if code == s {
			return true
		}
	}
	return false
}

func (c *Client) addAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiToken))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
