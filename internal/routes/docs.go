package routes

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/config"
	"github.com/gofiber/fiber/v2"
)

const docsIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    :root {
      color-scheme: light;
      --bg: #f6f7f4;
      --text: #132019;
      --muted: #536258;
      --accent: #1f6f4a;
      --border: #d8ddd6;
      --code-bg: #0f172a;
      --code-text: #e2e8f0;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      font-family: Georgia, "Times New Roman", serif;
      color: var(--text);
      background: linear-gradient(180deg, #fcfcfa 0%, var(--bg) 100%);
    }
    main {
      max-width: 1120px;
      margin: 0 auto;
      padding: 48px 20px 64px;
    }
    .hero, .panel {
      background: rgba(255, 255, 255, 0.92);
      border: 1px solid var(--border);
      border-radius: 18px;
      box-shadow: 0 20px 60px rgba(19, 32, 25, 0.08);
      padding: 28px;
      margin-bottom: 20px;
    }
    .hero h1 {
      margin: 0 0 12px;
      font-size: clamp(2rem, 5vw, 3.5rem);
      line-height: 0.96;
    }
    .hero p {
      margin: 0;
      max-width: 48rem;
      color: var(--muted);
      line-height: 1.6;
    }
    .actions {
      display: flex;
      flex-wrap: wrap;
      gap: 12px;
      margin-top: 20px;
    }
    .button {
      display: inline-flex;
      align-items: center;
      padding: 11px 16px;
      border-radius: 999px;
      border: 1px solid var(--accent);
      color: #fff;
      background: var(--accent);
      text-decoration: none;
      font-weight: 600;
    }
    .panel h2 {
      margin: 0 0 10px;
      font-size: 0.92rem;
      text-transform: uppercase;
      letter-spacing: 0.08em;
      color: var(--muted);
    }
    pre {
      margin: 0;
      padding: 20px;
      overflow: auto;
      border-radius: 14px;
      background: var(--code-bg);
      color: var(--code-text);
      font-size: 0.92rem;
      line-height: 1.5;
    }
  </style>
</head>
<body>
  <main>
    <section class="hero">
      <h1>{{ .Title }}</h1>
      <p>The OpenAPI spec is served from the same origin at <code>/docs/openapi.yaml</code> and is intended for development-only exposure. Point any local viewer at that URL.</p>
      <div class="actions">
        <a class="button" href="/docs/openapi.yaml">Open Raw Spec</a>
      </div>
    </section>
    <section class="panel">
      <h2>Loaded {{ .LoadedAt }}</h2>
      <pre>{{ .Spec }}</pre>
    </section>
  </main>
</body>
</html>
`

const openAPISpec = `openapi: 3.0.3
info:
  title: Contest Sponsorship API
  description: >-
    Backend for the athlete/business sponsorship marketplace. Covers auth,
    the onboarding wizard, profiles, discovery and matching, campaigns,
    dashboard widgets and chat.
  version: 1.0.0
paths:
  /api/auth/register:
    post:
      summary: Register a new athlete or business account
  /api/auth/login:
    post:
      summary: Exchange credentials for a JWT
  /api/auth/me:
    get:
      summary: Current account with its branch profile
  /api/chat/session:
    post:
      summary: Open an onboarding wizard session
  /api/onboarding/{sessionId}:
    get:
      summary: Current wizard state for a session
  /api/onboarding/{sessionId}/user-type:
    post:
      summary: Select the athlete or business branch
  /api/onboarding/{sessionId}/fields:
    put:
      summary: Write field values into the current step's section
  /api/onboarding/{sessionId}/next:
    post:
      summary: Validate the current step and advance
  /api/onboarding/{sessionId}/back:
    post:
      summary: Step back without validation
  /api/personalized-onboarding:
    post:
      summary: Submit the finished wizard for the authenticated user
  /api/v1/athletes:
    get:
      summary: List athlete profiles with filters and pagination
  /api/v1/athletes/profile:
    get:
      summary: Own athlete profile
    put:
      summary: Partial athlete profile update
  /api/v1/athletes/profile/avatar:
    post:
      summary: Upload an athlete avatar image
  /api/v1/athletes/recommended:
    get:
      summary: Scored athlete recommendations for a business
  /api/v1/athletes/{id}:
    get:
      summary: Athlete detail by user id
  /api/v1/businesses/profile:
    get:
      summary: Own business profile
    put:
      summary: Partial business profile update
  /api/v1/businesses/profile/logo:
    post:
      summary: Upload a business logo image
  /api/v1/businesses/recommended:
    get:
      summary: Scored business recommendations for an athlete
  /api/v1/campaigns:
    post:
      summary: Create a draft campaign
    get:
      summary: List own campaigns
  /api/v1/campaigns/{id}:
    get:
      summary: Campaign detail
  /api/v1/campaigns/{id}/status:
    patch:
      summary: Move a campaign through its lifecycle
  /api/v1/widgets:
    get:
      summary: List dashboard widgets in position order
    post:
      summary: Add a dashboard widget
  /api/v1/widgets/reorder:
    put:
      summary: Reorder all widgets in one call
  /api/v1/widgets/{id}:
    put:
      summary: Rename or resize a widget
    delete:
      summary: Remove a widget
  /api/v1/conversations:
    get:
      summary: List conversations for the caller
    post:
      summary: Business opens a conversation with an athlete
  /api/v1/conversations/{id}/messages:
    get:
      summary: Message history, marking received messages read
  /api/v1/ws:
    get:
      summary: WebSocket upgrade for realtime chat
`

type docsPageData struct {
	Title    string
	LoadedAt string
	Spec     string
}

func registerDocsRoutes(app fiber.Router, cfg *config.Config) error {
	if !cfg.DocsEnabled() {
		return nil
	}

	indexTemplate, err := template.New("docs-index").Parse(docsIndexHTML)
	if err != nil {
		return fmt.Errorf("parse docs template: %w", err)
	}

	pageData := docsPageData{
		Title:    "Contest Sponsorship API Docs",
		LoadedAt: time.Now().UTC().Format(time.RFC3339),
		Spec:     openAPISpec,
	}

	indexHandler := func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, fiber.MIMETextHTMLCharsetUTF8)
		c.Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; img-src 'self' data:; base-uri 'none'; form-action 'none'; frame-ancestors 'none'")

		var body bytes.Buffer
		if err := indexTemplate.Execute(&body, pageData); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render api docs")
		}

		return c.Status(fiber.StatusOK).Send(body.Bytes())
	}

	app.Get("/docs", indexHandler)
	app.Get("/docs/", indexHandler)
	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, "application/yaml; charset=utf-8")
		c.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="openapi.yaml"`)
		return c.Status(fiber.StatusOK).SendString(openAPISpec)
	})

	return nil
}

func applyDocsBaseHeaders(c *fiber.Ctx, contentType string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "no-store, max-age=0")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set(fiber.HeaderXFrameOptions, "DENY")
	c.Set("Referrer-Policy", "no-referrer")
	c.Set("X-Robots-Tag", "noindex, nofollow")
}
