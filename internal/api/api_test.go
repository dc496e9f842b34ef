package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystal-grimoire/backend/internal/auth"
	"github.com/crystal-grimoire/backend/internal/catalog"
	"github.com/crystal-grimoire/backend/internal/docstore/memory"
	"github.com/crystal-grimoire/backend/internal/model"
	"github.com/crystal-grimoire/backend/internal/payments"
	"github.com/crystal-grimoire/backend/internal/profile"
	"github.com/crystal-grimoire/backend/internal/services"
	"github.com/crystal-grimoire/backend/internal/support"
	"github.com/crystal-grimoire/backend/internal/usage"
)

const testAdminKey = "agent-key"

type fakeAnalyzer struct {
	ident    model.Identification
	guidance model.Guidance
	err      error
}

func (f *fakeAnalyzer) IdentifyImage(ctx context.Context, imageData []byte, mimeType, userContext string) (model.Identification, error) {
	if f.err != nil {
		return model.Identification{}, f.err
	}
	return f.ident, nil
}

func (f *fakeAnalyzer) Guide(ctx context.Context, need string, ownedCrystals []string) (model.Guidance, error) {
	if f.err != nil {
		return model.Guidance{}, f.err
	}
	return f.guidance, nil
}

type fakePayments struct {
	session payments.CheckoutSession
}

func (f *fakePayments) CreatePaymentIntent(ctx context.Context, amount int64, currency, userID string) (payments.PaymentIntent, error) {
	return payments.PaymentIntent{
		ID:           "pi_test",
		Amount:       amount,
		Currency:     currency,
		Status:       "requires_payment_method",
		ClientSecret: "pi_test_secret",
	}, nil
}

func (f *fakePayments) GetCheckoutSession(ctx context.Context, sessionID string) (payments.CheckoutSession, error) {
	sess := f.session
	sess.ID = sessionID
	return sess, nil
}

type testEnv struct {
	server   *httptest.Server
	analyzer *fakeAnalyzer
	pay      *fakePayments
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.New()
	cat := catalog.Default()
	ledger := usage.NewLedger(store)
	wallet := usage.NewWallet(ledger)
	profiles := profile.NewService(store)
	tickets := support.NewService(store)

	analyzer := &fakeAnalyzer{
		ident: model.Identification{
			Name:        "Clear Quartz",
			Confidence:  95,
			Description: "A clear specimen with strong clarity.",
		},
		guidance: model.Guidance{
			Crystals: []model.GuidanceCrystal{{Name: "Amethyst", Reason: "calming"}},
			Guidance: "Keep amethyst near your bed.",
		},
	}
	pay := &fakePayments{
		session: payments.CheckoutSession{PaymentStatus: "paid", Status: "complete", AmountTotal: 49900, Currency: "usd"},
	}

	router := NewRouter(Deps{
		Auth:          auth.DevAuthenticator{},
		Catalog:       cat,
		Profiles:      profiles,
		Support:       tickets,
		Identify:      services.NewIdentifyService(store, ledger, wallet, profiles, cat, analyzer),
		Guidance:      services.NewGuidanceService(store, ledger, profiles, analyzer),
		Recommend:     services.NewRecommendService(ledger, profiles, cat),
		Rituals:       services.NewRitualService(ledger, wallet, profiles, cat),
		Plans:         services.NewPlanService(ledger, profiles, pay),
		Usage:         services.NewUsageService(ledger, wallet, profiles),
		SupportAPIKey: testAdminKey,
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server, analyzer: analyzer, pay: pay}
}

// doJSON issues a request with an optional bearer token and decodes the
// response body into a generic map.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, e.server.URL+path, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		// Some endpoints return arrays; wrap those for uniform access.
		if raw[0] == '[' {
			var arr []interface{}
			require.NoError(t, json.Unmarshal(raw, &arr))
			decoded = map[string]interface{}{"items": arr}
		} else {
			require.NoError(t, json.Unmarshal(raw, &decoded))
		}
	}
	return resp.StatusCode, decoded
}

func devToken(userID string) string { return auth.DevTokenPrefix + userID }

func testImage() string {
	return base64.StdEncoding.EncodeToString([]byte("not really a jpeg but bytes enough"))
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)
	code, body := env.doJSON(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestPublicCatalogEndpoints(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.doJSON(t, http.MethodGet, "/api/crystals", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["items"])

	code, body = env.doJSON(t, http.MethodGet, "/api/crystals/Amethyst", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Amethyst", body["name"])

	code, _ = env.doJSON(t, http.MethodGet, "/api/crystals/Unobtanium", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = env.doJSON(t, http.MethodGet, "/api/moon", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["phase"])

	code, body = env.doJSON(t, http.MethodGet, "/api/plans", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["plans"])

	code, body = env.doJSON(t, http.MethodGet, "/api/crystals/daily", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["name"])

	// The heart filter narrows the highlight pool to rose quartz.
	code, body = env.doJSON(t, http.MethodGet, "/api/crystals/daily?chakra=heart", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Rose Quartz", body["name"])
}

func TestIdentifyRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	code, _ := env.doJSON(t, http.MethodPost, "/api/identify", "", map[string]interface{}{
		"image": testImage(),
	})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestIdentifyFlow(t *testing.T) {
	env := newTestEnv(t)
	token := devToken("user-1")

	code, body := env.doJSON(t, http.MethodPost, "/api/identify", token, map[string]interface{}{
		"image":    testImage(),
		"mimeType": "image/jpeg",
		"context":  "found at the beach",
	})
	require.Equal(t, http.StatusOK, code)

	ident := body["identification"].(map[string]interface{})
	assert.Equal(t, "Clear Quartz", ident["name"])
	assert.Equal(t, float64(95), ident["confidence"])

	// Confident identifications line up with the catalog and earn credits.
	match := body["catalogMatch"].(map[string]interface{})
	assert.Equal(t, "Clear Quartz", match["name"])
	assert.Equal(t, float64(3), body["walletCredits"])
	assert.Equal(t, float64(2), body["remainingToday"])

	code, body = env.doJSON(t, http.MethodGet, "/api/identifications", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["items"], 1)
}

func TestIdentifyRejectsBadPayloads(t *testing.T) {
	env := newTestEnv(t)
	token := devToken("user-1")

	code, _ := env.doJSON(t, http.MethodPost, "/api/identify", token, map[string]interface{}{
		"image": "!!!not-base64!!!",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = env.doJSON(t, http.MethodPost, "/api/identify", token, map[string]interface{}{
		"image":    testImage(),
		"mimeType": "application/pdf",
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestIdentifyDailyLimit(t *testing.T) {
	env := newTestEnv(t)
	token := devToken("user-limited")
	payload := map[string]interface{}{"image": testImage()}

	// Free plan allows three identifications per day.
	for i := 0; i < 3; i++ {
		code, _ := env.doJSON(t, http.MethodPost, "/api/identify", token, payload)
		require.Equal(t, http.StatusOK, code, "request %d", i+1)
	}
	code, _ := env.doJSON(t, http.MethodPost, "/api/identify", token, payload)
	assert.Equal(t, http.StatusTooManyRequests, code)
}

func TestGuidanceFlow(t *testing.T) {
	env := newTestEnv(t)
	token := devToken("user-2")

	code, _ := env.doJSON(t, http.MethodPost, "/api/guidance", token, map[string]interface{}{
		"need": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := env.doJSON(t, http.MethodPost, "/api/guidance", token, map[string]interface{}{
		"need": "I cannot sleep",
	})
	require.Equal(t, http.StatusOK, code)
	guidance := body["guidance"].(map[string]interface{})
	assert.Equal(t, "Keep amethyst near your bed.", guidance["guidance"])

	// Free plan allows a single guidance request per day.
	code, _ = env.doJSON(t, http.MethodPost, "/api/guidance", token, map[string]interface{}{
		"need": "more advice please",
	})
	assert.Equal(t, http.StatusTooManyRequests, code)
}

func TestRecommendationsFlow(t *testing.T) {
	env := newTestEnv(t)
	token := devToken("user-3")

	code, _ := env.doJSON(t, http.MethodPost, "/api/recommendations", token, map[string]interface{}{
		"intents": []string{"love"},
		"limit":   100,
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := env.doJSON(t, http.MethodPost, "/api/recommendations", token, map[string]interface{}{
		"intents": []string{"love"},
	})
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["recommendations"])
	assert.Contains(t, body["intentKeys"], "love")
}

func TestMoonRitualFlow(t *testing.T) {
	env := newTestEnv(t)
	token := devToken("user-4")

	code, body := env.doJSON(t, http.MethodGet, "/api/rituals/moon?phase=full_moon", token, nil)
	require.Equal(t, http.StatusOK, code)
	tpl := body["ritual"].(map[string]interface{})
	assert.Equal(t, "full_moon", tpl["phase"])
	assert.NotEmpty(t, body["crystals"])

	code, _ = env.doJSON(t, http.MethodGet, "/api/rituals/moon?phase=blood_moon", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = env.doJSON(t, http.MethodPost, "/api/rituals/complete", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(5), body["credits"])
}

func TestHealingLayout(t *testing.T) {
	env := newTestEnv(t)
	token := devToken("user-5")

	code, body := env.doJSON(t, http.MethodPost, "/api/rituals/layout", token, nil)
	require.Equal(t, http.StatusOK, code)
	layout := body["layout"].([]interface{})
	assert.Len(t, layout, 7)
}

func TestHealingLayoutRequestedChakras(t *testing.T) {
	env := newTestEnv(t)
	token := devToken("user-5b")

	code, body := env.doJSON(t, http.MethodPost, "/api/rituals/layout", token, map[string]interface{}{
		"chakras": []string{"heart", "throat"},
	})
	require.Equal(t, http.StatusOK, code)
	layout := body["layout"].([]interface{})
	require.Len(t, layout, 2)
	first := layout[0].(map[string]interface{})
	second := layout[1].(map[string]interface{})
	assert.Equal(t, "Heart", first["chakra"])
	assert.Equal(t, "Throat", second["chakra"])
	assert.NotEqual(t, first["crystalId"], second["crystalId"])
}

func TestMoonRitualBadPhaseKeepsAllowance(t *testing.T) {
	env := newTestEnv(t)
	token := devToken("user-4b")

	// A rejected phase must not count against the daily ritual allowance.
	code, _ := env.doJSON(t, http.MethodGet, "/api/rituals/moon?phase=blood_moon", token, nil)
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = env.doJSON(t, http.MethodGet, "/api/rituals/moon?phase=full_moon", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = env.doJSON(t, http.MethodGet, "/api/rituals/moon?phase=full_moon", token, nil)
	assert.Equal(t, http.StatusTooManyRequests, code)
}

func TestRitualTemplatesPublic(t *testing.T) {
	env := newTestEnv(t)
	code, body := env.doJSON(t, http.MethodGet, "/api/rituals/templates", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["items"], 8)
}

func TestPlanStatusAndUpgrade(t *testing.T) {
	env := newTestEnv(t)
	token := devToken("user-6")

	code, body := env.doJSON(t, http.MethodGet, "/api/plan/status", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "free", body["plan"])

	// Free tier is not purchasable.
	code, _ = env.doJSON(t, http.MethodPost, "/api/plan/upgrade", token, map[string]interface{}{
		"tier": "free",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = env.doJSON(t, http.MethodPost, "/api/plan/upgrade", token, map[string]interface{}{
		"tier": "founders",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(49900), body["amount"])

	code, body = env.doJSON(t, http.MethodPost, "/api/plan/confirm", token, map[string]interface{}{
		"sessionId": "cs_test",
		"tier":      "founders",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "founders", body["plan"])
}

func TestPlanConfirmRejectsUnpaidSession(t *testing.T) {
	env := newTestEnv(t)
	env.pay.session.PaymentStatus = "unpaid"
	token := devToken("user-7")

	code, _ := env.doJSON(t, http.MethodPost, "/api/plan/confirm", token, map[string]interface{}{
		"sessionId": "cs_test",
		"tier":      "premium",
	})
	assert.Equal(t, http.StatusPreconditionFailed, code)
}

func TestUsageTracking(t *testing.T) {
	env := newTestEnv(t)
	token := devToken("user-8")

	code, _ := env.doJSON(t, http.MethodPost, "/api/usage/track", token, map[string]interface{}{
		"action": "not_a_real_action",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	// Free plan allows one dream analysis per day.
	code, body := env.doJSON(t, http.MethodPost, "/api/usage/track", token, map[string]interface{}{
		"action": "dream_analysis",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), body["remainingToday"])

	code, _ = env.doJSON(t, http.MethodPost, "/api/usage/track", token, map[string]interface{}{
		"action": "dream_analysis",
	})
	assert.Equal(t, http.StatusTooManyRequests, code)

	code, body = env.doJSON(t, http.MethodGet, "/api/usage", token, nil)
	require.Equal(t, http.StatusOK, code)
	daily := body["dailyCounts"].(map[string]interface{})
	assert.Equal(t, float64(1), daily["dream_analysis"])
}

func TestWalletFlow(t *testing.T) {
	env := newTestEnv(t)
	token := devToken("user-9")

	code, body := env.doJSON(t, http.MethodGet, "/api/wallet", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), body["credits"])

	code, body = env.doJSON(t, http.MethodPost, "/api/wallet/earn", token, map[string]interface{}{
		"source": "meditation_complete",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(5), body["credits"])

	code, _ = env.doJSON(t, http.MethodPost, "/api/wallet/earn", token, map[string]interface{}{
		"source": "not_a_source",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = env.doJSON(t, http.MethodPost, "/api/wallet/spend", token, map[string]interface{}{
		"amount": 3,
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["credits"])

	code, _ = env.doJSON(t, http.MethodPost, "/api/wallet/spend", token, map[string]interface{}{
		"amount": 100,
	})
	assert.Equal(t, http.StatusPreconditionFailed, code)
}

func TestProfileLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := devToken("user-10")

	code, body := env.doJSON(t, http.MethodPost, "/api/profile/ensure", token, map[string]interface{}{
		"displayName": "Luna",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Luna", body["displayName"])
	assert.Equal(t, "free", body["tier"])

	code, body = env.doJSON(t, http.MethodPatch, "/api/profile", token, map[string]interface{}{
		"zodiacSign": "Pisces",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Pisces", body["zodiacSign"])

	// Server-owned fields are not updatable through the API.
	code, _ = env.doJSON(t, http.MethodPatch, "/api/profile", token, map[string]interface{}{
		"tier": "founders",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = env.doJSON(t, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Luna", body["displayName"])

	code, body = env.doJSON(t, http.MethodDelete, "/api/account", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.GreaterOrEqual(t, body["deletedDocuments"], float64(1))

	code, _ = env.doJSON(t, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSupportTicketLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := devToken("user-11")

	code, body := env.doJSON(t, http.MethodPost, "/api/support/tickets", token, map[string]interface{}{
		"subject": "Billing question",
		"body":    "I was charged twice.",
	})
	require.Equal(t, http.StatusCreated, code)
	ticketID := body["ticketId"].(string)
	assert.Equal(t, "open", body["status"])
	assert.Equal(t, "medium", body["priority"])

	code, body = env.doJSON(t, http.MethodGet, "/api/support/tickets", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["tickets"], 1)

	// Another customer cannot see the ticket.
	code, _ = env.doJSON(t, http.MethodGet, "/api/support/tickets/"+ticketID, devToken("someone-else"), nil)
	assert.Equal(t, http.StatusNotFound, code)

	// Admin endpoints refuse without the key.
	code, _ = env.doJSON(t, http.MethodPost, "/api/admin/support/tickets/"+ticketID+"/status", "", map[string]interface{}{
		"status": "pending_user",
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = env.adminJSON(t, http.MethodPost, "/api/admin/support/tickets/"+ticketID+"/comments", map[string]interface{}{
		"body": "We are looking into it.",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pending_user", body["status"])

	// A customer reply hands the ticket back to support.
	code, body = env.doJSON(t, http.MethodPost, "/api/support/tickets/"+ticketID+"/comments", token, map[string]interface{}{
		"body": "Here is my receipt.",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pending_support", body["status"])

	code, body = env.adminJSON(t, http.MethodPost, "/api/admin/support/tickets/"+ticketID+"/status", map[string]interface{}{
		"status": "resolved",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "resolved", body["status"])

	code, body = env.doJSON(t, http.MethodPost, "/api/support/tickets/"+ticketID+"/status", token, map[string]interface{}{
		"status": "closed",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "closed", body["status"])

	// Closed tickets refuse further comments.
	code, _ = env.doJSON(t, http.MethodPost, "/api/support/tickets/"+ticketID+"/comments", token, map[string]interface{}{
		"body": "one more thing",
	})
	assert.Equal(t, http.StatusPreconditionFailed, code)
}

// adminJSON issues a request carrying the support agent API key.
func (e *testEnv) adminJSON(t *testing.T, method, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, e.server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("X-Api-Key", testAdminKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}
