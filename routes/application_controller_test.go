package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateApplication(t *testing.T) {
	_, srv := newTestApp(t)

	res, body := doJSON(t, "POST", srv.URL+"/applications", nil)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	assert.NotEmpty(t, body["id"])
	assert.EqualValues(t, 1, body["currentStep"])

	steps := body["steps"].([]any)
	require.Len(t, steps, 4)
	first := steps[0].(map[string]any)
	assert.Equal(t, "Taxpayer Info", first["label"])
	assert.Equal(t, "current", first["status"])
	for _, s := range steps[1:] {
		assert.Equal(t, "incomplete", s.(map[string]any)["status"])
	}
}

func TestCreateApplicationSeedsDefaults(t *testing.T) {
	_, srv := newTestApp(t)
	id := createApplication(t, srv)

	res, body := doJSON(t, "GET", srv.URL+"/applications/"+id+"/fields/taxpayerType", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "individual", body["value"])

	res, body = doJSON(t, "GET", srv.URL+"/applications/"+id+"/fields/businessType", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "sole", body["value"])
}

func TestCreateApplicationSeedsRequirements(t *testing.T) {
	_, srv := newTestApp(t)
	id := createApplication(t, srv)

	res, body := doJSON(t, "GET", srv.URL+"/applications/"+id+"/fields/requirements", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	reqs := body["value"].([]any)
	require.Len(t, reqs, 3)

	types := []string{}
	for _, r := range reqs {
		req := r.(map[string]any)
		assert.Equal(t, "Pending", req["status"])
		types = append(types, req["type"].(string))
	}
	assert.Equal(t, []string{"Business Terms", "Community Tax Certification", "DTI"}, types)
}

func TestGetApplicationNotFound(t *testing.T) {
	_, srv := newTestApp(t)

	res, _ := doJSON(t, "GET", srv.URL+"/applications/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestFieldRoundTrip(t *testing.T) {
	_, srv := newTestApp(t)
	id := createApplication(t, srv)

	res, _ := doJSON(t, "PUT", srv.URL+"/applications/"+id+"/fields/fullName",
		map[string]any{"value": "Juan Dela Cruz"})
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	res, body := doJSON(t, "GET", srv.URL+"/applications/"+id+"/fields/fullName", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Juan Dela Cruz", body["value"])
}

func TestFieldLastWriteWins(t *testing.T) {
	_, srv := newTestApp(t)
	id := createApplication(t, srv)

	url := srv.URL + "/applications/" + id + "/fields/businessName"
	res, _ := doJSON(t, "PUT", url, map[string]any{"value": "First Name"})
	require.Equal(t, http.StatusNoContent, res.StatusCode)
	res, _ = doJSON(t, "PUT", url, map[string]any{"value": "Second Name"})
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	res, body := doJSON(t, "GET", url, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Second Name", body["value"])
}

func TestGetUnknownField(t *testing.T) {
	_, srv := newTestApp(t)
	id := createApplication(t, srv)

	res, _ := doJSON(t, "GET", srv.URL+"/applications/"+id+"/fields/noSuchField", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestRequirementsFieldIsReadOnly(t *testing.T) {
	_, srv := newTestApp(t)
	id := createApplication(t, srv)

	res, _ := doJSON(t, "PUT", srv.URL+"/applications/"+id+"/fields/requirements",
		map[string]any{"value": []any{}})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestWizardNavigation(t *testing.T) {
	_, srv := newTestApp(t)
	id := createApplication(t, srv)

	step := func(body map[string]any) int {
		return int(body["currentStep"].(float64))
	}

	// forward to the last step, then stay put
	res, body := doJSON(t, "POST", srv.URL+"/applications/"+id+"/next", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 2, step(body))

	_, body = doJSON(t, "POST", srv.URL+"/applications/"+id+"/next", nil)
	assert.Equal(t, 3, step(body))
	_, body = doJSON(t, "POST", srv.URL+"/applications/"+id+"/next", nil)
	assert.Equal(t, 4, step(body))
	_, body = doJSON(t, "POST", srv.URL+"/applications/"+id+"/next", nil)
	assert.Equal(t, 4, step(body))

	steps := body["steps"].([]any)
	assert.Equal(t, "complete", steps[0].(map[string]any)["status"])
	assert.Equal(t, "complete", steps[2].(map[string]any)["status"])
	assert.Equal(t, "current", steps[3].(map[string]any)["status"])

	// back to the first step, then stay put
	_, body = doJSON(t, "POST", srv.URL+"/applications/"+id+"/prev", nil)
	assert.Equal(t, 3, step(body))
	_, body = doJSON(t, "POST", srv.URL+"/applications/"+id+"/prev", nil)
	_, body = doJSON(t, "POST", srv.URL+"/applications/"+id+"/prev", nil)
	assert.Equal(t, 1, step(body))
	_, body = doJSON(t, "POST", srv.URL+"/applications/"+id+"/prev", nil)
	assert.Equal(t, 1, step(body))
}

func advanceToFinalStep(t *testing.T, srv *httptest.Server, id string) {
	t.Helper()
	for i := 0; i < 3; i++ {
		res, _ := doJSON(t, "POST", srv.URL+"/applications/"+id+"/next", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
	}
}

func TestSubmitBeforeFinalStep(t *testing.T) {
	_, srv := newTestApp(t)
	id := createApplication(t, srv)

	res, _ := doJSON(t, "POST", srv.URL+"/applications/"+id+"/submit", nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestSubmitValidation(t *testing.T) {
	_, srv := newTestApp(t)
	id := createApplication(t, srv)
	advanceToFinalStep(t, srv, id)

	res, body := doJSON(t, "POST", srv.URL+"/applications/"+id+"/submit", nil)
	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "fullName")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "businessName")
	assert.Contains(t, errs, "agreedToTerms")
}

func TestSubmitInvalidEmail(t *testing.T) {
	_, srv := newTestApp(t)
	id := createApplication(t, srv)
	advanceToFinalStep(t, srv, id)

	fillValidDraft(t, srv, id)
	res, _ := doJSON(t, "PUT", srv.URL+"/applications/"+id+"/fields/email",
		map[string]any{"value": "not-an-email"})
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	res, body := doJSON(t, "POST", srv.URL+"/applications/"+id+"/submit", nil)
	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "email")
	assert.NotContains(t, errs, "fullName")
}

func fillValidDraft(t *testing.T, srv *httptest.Server, id string) {
	t.Helper()
	fields := map[string]any{
		"fullName":      "Juan Dela Cruz",
		"email":         "juan@example.com",
		"businessName":  "Juan's Sari-Sari Store",
		"agreedToTerms": true,
	}
	for name, value := range fields {
		res, _ := doJSON(t, "PUT", srv.URL+"/applications/"+id+"/fields/"+name,
			map[string]any{"value": value})
		require.Equal(t, http.StatusNoContent, res.StatusCode)
	}
}

func TestSubmitHappyPath(t *testing.T) {
	_, srv := newTestApp(t)
	id := createApplication(t, srv)
	advanceToFinalStep(t, srv, id)
	fillValidDraft(t, srv, id)

	res, body := doJSON(t, "POST", srv.URL+"/applications/"+id+"/submit", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, true, body["submitted"])

	// a submitted application is frozen
	res, _ = doJSON(t, "POST", srv.URL+"/applications/"+id+"/submit", nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	res, _ = doJSON(t, "PUT", srv.URL+"/applications/"+id+"/fields/fullName",
		map[string]any{"value": "Someone Else"})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	res, _ = doJSON(t, "POST", srv.URL+"/applications/"+id+"/next", nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestAddRequirement(t *testing.T) {
	_, srv := newTestApp(t)
	id := createApplication(t, srv)

	res, body := doJSON(t, "POST", srv.URL+"/applications/"+id+"/requirements",
		map[string]any{
			"type":        "Barangay Clearance",
			"description": "Barangay Clearance 2024",
			"fileName":    "clearance.pdf",
		})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "Uploaded", body["status"])
	assert.Equal(t, "clearance.pdf", body["fileName"])
	assert.NotEmpty(t, body["id"])

	res, listBody := doJSON(t, "GET", srv.URL+"/applications/"+id+"/fields/requirements", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, listBody["value"].([]any), 4)
}

func TestAddRequirementIncomplete(t *testing.T) {
	_, srv := newTestApp(t)
	id := createApplication(t, srv)

	// all three of type, description and fileName are mandatory
	res, _ := doJSON(t, "POST", srv.URL+"/applications/"+id+"/requirements",
		map[string]any{"type": "DTI", "description": "DTI Certificate"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = doJSON(t, "POST", srv.URL+"/applications/"+id+"/requirements",
		map[string]any{"description": "DTI Certificate", "fileName": "dti.pdf"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestDeleteRequirement(t *testing.T) {
	_, srv := newTestApp(t)
	id := createApplication(t, srv)

	_, body := doJSON(t, "POST", srv.URL+"/applications/"+id+"/requirements",
		map[string]any{
			"type":        "Mayor's Permit",
			"description": "Mayor's Permit 2024",
			"fileName":    "permit.pdf",
		})
	reqId := body["id"].(string)

	res, _ := doJSON(t, "DELETE", srv.URL+"/applications/"+id+"/requirements/"+reqId, nil)
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	res, _ = doJSON(t, "DELETE", srv.URL+"/applications/"+id+"/requirements/"+reqId, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestGetApplicationIncludesEverything(t *testing.T) {
	_, srv := newTestApp(t)
	id := createApplication(t, srv)

	res, body := doJSON(t, "GET", srv.URL+"/applications/"+id, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	assert.Equal(t, id, body["id"])
	assert.EqualValues(t, 1, body["currentStep"])
	assert.Equal(t, false, body["submitted"])
	assert.Len(t, body["steps"].([]any), 4)

	fields := body["fields"].(map[string]any)
	assert.Equal(t, "individual", fields["taxpayerType"])
	assert.Len(t, fields["requirements"].([]any), 3)
}
