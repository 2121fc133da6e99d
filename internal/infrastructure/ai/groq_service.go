package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/nicklcsdev/inventario-lite/internal/application/dto"
	"github.com/nicklcsdev/inventario-lite/internal/application/ports"
)

// Verificar en tiempo de compilación que GroqService implementa LLMService.
var _ ports.LLMService = (*GroqService)(nil)

const (
	groqChatURL          = "https://api.groq.com/openai/v1/chat/completions"
	groqTranscriptionURL = "https://api.groq.com/openai/v1/audio/transcriptions"

	descripcionPrompt = `Actúa como un experto en copywriting para e-commerce.
Crea una descripción corta, persuasiva y emocionante (máximo 40 palabras) para vender este producto:
Nombre: %s
Características: %s

IMPORTANTE: Responde SOLO con el texto plano. NO uses comillas en tu respuesta.`

	extraccionVozPrompt = `Eres un asistente de inventario. El siguiente texto es el dictado de voz de un
vendedor describiendo un producto. Devuelve ÚNICAMENTE un objeto JSON válido (sin markdown,
sin bloques de código) con esta estructura exacta:
{
  "codigo": "<código del producto o cadena vacía>",
  "nombre": "<nombre del producto o cadena vacía>",
  "caracteristicas": "<características dictadas o cadena vacía>",
  "moneda": "<COP, USD o EUR; COP si no se menciona>",
  "precio": <número decimal; 0 si no se menciona>
}

Reglas:
- No inventes datos que el dictado no mencione.
- No incluyas texto fuera del JSON. Solo el objeto JSON.`
)

// GroqService adaptador que implementa LLMService usando la API REST de Groq
// (chat para descripciones, Whisper para transcripción de voz).
// Usa net/http de la librería estándar de Go; no requiere SDK.
type GroqService struct {
	apiKey       string
	model        string
	whisperModel string
	httpClient   *http.Client
}

// NewGroqService construye el adaptador.
// model suele ser "llama-3.3-70b-versatile"; whisperModel "whisper-large-v3".
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewGroqService(apiKey, model, whisperModel string) *GroqService {
	return &GroqService{
		apiKey:       apiKey,
		model:        model,
		whisperModel: whisperModel,
		httpClient: &http.Client{
			// Timeout de red de 25 s; el use case impone además un context.WithTimeout de 10 s.
			Timeout: 25 * time.Second,
		},
	}
}

// ── Estructuras internas del protocolo OpenAI-compatible de Groq ─────────────

type groqChatRequest struct {
	Model    string        `json:"model"`
	Messages []groqMessage `json:"messages"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type groqTranscriptionResponse struct {
	Text string `json:"text"`
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo
// envuelva en markdown. Captura desde el primer '{' hasta el último '}'.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ── Implementación del puerto ─────────────────────────────────────────────────

// GenerarDescripcion pide al modelo una descripción comercial corta.
func (s *GroqService) GenerarDescripcion(ctx context.Context, nombre, caracteristicas string) (string, error) {
	prompt := fmt.Sprintf(descripcionPrompt, nombre, caracteristicas)
	texto, err := s.chat(ctx, []groqMessage{{Role: "user", Content: prompt}})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(texto), nil
}

// ExtraerProductoDeVoz transcribe el audio con Whisper y luego pide al modelo
// de chat la extracción estructurada {codigo, nombre, caracteristicas, moneda, precio}.
func (s *GroqService) ExtraerProductoDeVoz(ctx context.Context, audio []byte, nombreArchivo string) (*dto.VozProductoDTO, error) {
	transcripcion, err := s.transcribir(ctx, audio, nombreArchivo)
	if err != nil {
		return nil, err
	}

	texto, err := s.chat(ctx, []groqMessage{
		{Role: "system", Content: extraccionVozPrompt},
		{Role: "user", Content: transcripcion},
	})
	if err != nil {
		return nil, err
	}

	bloque := jsonBlockRe.FindString(texto)
	if bloque == "" {
		return nil, fmt.Errorf("AI: la respuesta no contiene JSON: %q", texto)
	}
	var out dto.VozProductoDTO
	if err := json.Unmarshal([]byte(bloque), &out); err != nil {
		return nil, fmt.Errorf("AI: deserializar extracción de voz: %w", err)
	}
	if out.Moneda == "" {
		out.Moneda = "COP"
	}
	return &out, nil
}

// chat envía mensajes al endpoint de chat completions y devuelve el contenido
// de la primera respuesta.
func (s *GroqService) chat(ctx context.Context, messages []groqMessage) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: GROQ_API_KEY no configurado")
	}

	body, err := json.Marshal(groqChatRequest{Model: s.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, groqChatURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("AI: llamada a Groq: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	var out groqChatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta (HTTP %d): %w", resp.StatusCode, err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("AI: Groq devolvió error: %s", out.Error.Message)
	}
	if resp.StatusCode != http.StatusOK || len(out.Choices) == 0 {
		return "", fmt.Errorf("AI: respuesta inesperada de Groq (HTTP %d)", resp.StatusCode)
	}
	return out.Choices[0].Message.Content, nil
}

// transcribir envía el audio a Whisper (multipart) y devuelve el texto.
func (s *GroqService) transcribir(ctx context.Context, audio []byte, nombreArchivo string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: GROQ_API_KEY no configurado")
	}
	if nombreArchivo == "" {
		nombreArchivo = "dictado.webm"
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", nombreArchivo)
	if err != nil {
		return "", fmt.Errorf("AI: armar multipart: %w", err)
	}
	if _, err := fw.Write(audio); err != nil {
		return "", fmt.Errorf("AI: escribir audio: %w", err)
	}
	if err := mw.WriteField("model", s.whisperModel); err != nil {
		return "", fmt.Errorf("AI: escribir campo model: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("AI: cerrar multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, groqTranscriptionURL, &buf)
	if err != nil {
		return "", fmt.Errorf("AI: crear request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("AI: llamada a Whisper: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI: transcripción falló (HTTP %d): %s", resp.StatusCode, string(raw))
	}

	var out groqTranscriptionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("AI: deserializar transcripción: %w", err)
	}
	if strings.TrimSpace(out.Text) == "" {
		return "", fmt.Errorf("AI: la transcripción llegó vacía")
	}
	return out.Text, nil
}
