package webapi

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/internal/fixtures/mocks"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/config"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestApp() (*fiber.App, *mocks.UnitOfWork) {
	uow := mocks.NewUnitOfWork()
	app := NewApp(config.Deps{
		Uow:    uow,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return app, uow
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func TestGetCheck_NotFound(t *testing.T) {
	app, uow := newTestApp()
	checkID := uuid.New()
	uow.CheckRepo.On("Get", mock.Anything, checkID).Return(nil, domain.ErrNotFound)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/checks/"+checkID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))
}

func TestGetCheck_InvalidID(t *testing.T) {
	app, _ := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/checks/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRejectCheck_MissingReasonsRejected(t *testing.T) {
	app, uow := newTestApp()
	checkID := uuid.New()

	body := fmt.Sprintf(`{"actioned_by": %q, "decision_reason": "bad"}`, uuid.New())
	resp, err := app.Test(jsonRequest(http.MethodPost, "/checks/"+checkID.String()+"/reject", body))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	uow.CheckRepo.AssertNotCalled(t, "UpdateDecision", mock.Anything, mock.Anything)
}

func TestAcceptCheck_Conflict(t *testing.T) {
	app, uow := newTestApp()
	checkID := uuid.New()
	pending := &security.Check{ID: checkID, Status: security.CheckStatusPending}

	uow.CheckRepo.On("Get", mock.Anything, checkID).Return(pending, nil)
	uow.CheckRepo.On("UpdateDecision", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: check is no longer pending", domain.ErrConflict))

	body := fmt.Sprintf(`{"actioned_by": %q}`, uuid.New())
	resp, err := app.Test(jsonRequest(http.MethodPost, "/checks/"+checkID.String()+"/accept", body))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAcceptCheck_RejectionReasonsRejected(t *testing.T) {
	app, uow := newTestApp()
	checkID := uuid.New()

	body := fmt.Sprintf(`{
		"actioned_by": %q,
		"rejection_reasons": [{"code": "fiu_investigation_id", "detail": "FIU-123"}]
	}`, uuid.New())
	resp, err := app.Test(jsonRequest(http.MethodPost, "/checks/"+checkID.String()+"/accept", body))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	uow.CheckRepo.AssertNotCalled(t, "UpdateDecision", mock.Anything, mock.Anything)
}

func TestCreateAutoAcceptRule_DuplicateMessagePreserved(t *testing.T) {
	app, uow := newTestApp()
	detailsID, prisonerID := uuid.New(), uuid.New()
	existing := &security.CheckAutoAcceptRule{ID: uuid.New()}

	uow.AutoAcceptRuleRepo.On("FindByPair", mock.Anything, detailsID, prisonerID).Return(existing, nil)

	body := fmt.Sprintf(`{
		"debit_card_sender_details_id": %q,
		"prisoner_profile_id": %q,
		"states": [{"active": true, "reason": "trusted family member", "added_by": %q}]
	}`, detailsID, prisonerID, uuid.New())
	resp, err := app.Test(jsonRequest(http.MethodPost, "/security/checks/auto-accept-rules", body))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var pd ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Equal(t,
		"An existing AutoAcceptRule is present for this DebitCardSenderDetails/PrisonerProfile pair",
		pd.Detail)
}

func TestCreateAutoAcceptRule_RequiresExactlyOneState(t *testing.T) {
	app, _ := newTestApp()

	body := fmt.Sprintf(`{
		"debit_card_sender_details_id": %q,
		"prisoner_profile_id": %q,
		"states": []
	}`, uuid.New(), uuid.New())
	resp, err := app.Test(jsonRequest(http.MethodPost, "/security/checks/auto-accept-rules", body))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
