package routes

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/lgu-leganes/bizportal/app"
	"github.com/lgu-leganes/bizportal/httpx"
	"github.com/lgu-leganes/bizportal/log"
	"github.com/lgu-leganes/bizportal/model"
	"github.com/lgu-leganes/bizportal/wizard"
)

// seed requirements every fresh draft starts with, matching the checklist
// shown on the Requirements step
var seedRequirements = []model.Requirement{
	{Type: "Business Terms", Description: "Business Terms", Status: model.RequirementPending},
	{Type: "Community Tax Certification", Description: "Community Tax Certification", Status: model.RequirementPending},
	{Type: "DTI", Description: "DTI", Status: model.RequirementPending},
}

func CreateApplication(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		applicationId := uuid.NewString()
		now := time.Now()
		_, err = tx.ExecContext(r.Context(), `
			INSERT INTO application (id, current_step, submitted, created_at, updated_at)
			VALUES (?, 1, FALSE, ?, ?)`,
			applicationId,
			now,
			now,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_application", err)
			return
		}

		stmt, err := tx.PrepareContext(r.Context(), `
			INSERT INTO application_field (application_id, name, value)
			VALUES (?, ?, ?)`)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_application.fields.prepare", err)
			return
		}
		defer stmt.Close()

		for name, value := range model.DraftDefaults() {
			valueJson, err := json.Marshal(value)
			if err != nil {
				httpx.LogInternalError(w, "db.insert_application.fields.encode_value", err)
				return
			}
			_, err = stmt.ExecContext(r.Context(), applicationId, name, string(valueJson))
			if err != nil {
				httpx.LogInternalError(w, "db.insert_application.fields.insert", err)
				return
			}
		}

		for _, req := range seedRequirements {
			_, err = tx.ExecContext(r.Context(), `
				INSERT INTO requirement (id, application_id, type, description, status, file_name)
				VALUES (?, ?, ?, ?, ?, '')`,
				uuid.NewString(),
				applicationId,
				req.Type,
				req.Description,
				req.Status,
			)
			if err != nil {
				httpx.LogInternalError(w, "db.insert_application.requirements", err)
				return
			}
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.insert_application.commit", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id":          applicationId,
			"currentStep": 1,
			"steps":       wizard.Steps(1),
		})
	}
}

func GetApplication(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationId := chi.URLParam(r, "id")

		application, err := loadApplication(r, app.DB, applicationId)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "get_application", applicationId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_application", err)
			return
		}

		application.Fields, err = loadFields(r, app.DB, applicationId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_application.fields", err)
			return
		}

		requirements, err := loadRequirements(r, app.DB, applicationId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_application.requirements", err)
			return
		}
		application.Fields["requirements"] = requirements

		render.JSON(w, r, map[string]any{
			"id":          application.ID,
			"currentStep": application.CurrentStep,
			"submitted":   application.Submitted,
			"createdAt":   application.CreatedAt,
			"updatedAt":   application.UpdatedAt,
			"fields":      application.Fields,
			"steps":       wizard.Steps(application.CurrentStep),
		})
	}
}

func GetApplicationField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationId := chi.URLParam(r, "id")
		name := chi.URLParam(r, "name")

		// the requirements list lives in its own table
		if name == "requirements" {
			requirements, err := loadRequirements(r, app.DB, applicationId)
			if err != nil {
				httpx.LogInternalError(w, "db.get_field.requirements", err)
				return
			}
			render.JSON(w, r, map[string]any{"value": requirements})
			return
		}

		var valueJson string
		err := app.QueryRowContext(r.Context(), `
			SELECT value FROM application_field
			WHERE application_id = ?
				AND name = ?`,
			applicationId,
			name,
		).Scan(&valueJson)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "get_field", name)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_field", err)
			return
		}

		var value any
		err = json.Unmarshal([]byte(valueJson), &value)
		if err != nil {
			httpx.LogInternalError(w, "db.get_field.parse_value", err)
			return
		}

		render.JSON(w, r, map[string]any{"value": value})
	}
}

func UpdateApplicationField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationId := chi.URLParam(r, "id")
		name := chi.URLParam(r, "name")

		if name == "requirements" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "update_field.requirements",
				"requirements are managed through /applications/{id}/requirements")
			return
		}

		var body struct {
			Value any `json:"value"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		application, err := loadApplication(r, app.DB, applicationId)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "update_field", applicationId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.update_field.get_application", err)
			return
		}
		if application.Submitted {
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "update_field.already_submitted")
			return
		}

		valueJson, err := json.Marshal(body.Value)
		if err != nil {
			httpx.LogInternalError(w, "db.update_field.encode_value", err)
			return
		}

		// last write wins, other fields untouched
		_, err = app.ExecContext(r.Context(), `
			INSERT INTO application_field (application_id, name, value)
			VALUES (?, ?, ?)
			ON CONFLICT (application_id, name)
			DO UPDATE SET value = excluded.value`,
			applicationId,
			name,
			string(valueJson),
		)
		if err != nil {
			httpx.LogInternalError(w, "db.update_field", err)
			return
		}

		err = touchApplication(r, app.DB, applicationId)
		if err != nil {
			httpx.LogInternalError(w, "db.update_field.touch", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func AdvanceApplication(app app.App) http.HandlerFunc {
	return moveApplication(app, "advance_application", wizard.Next)
}

func RewindApplication(app app.App) http.HandlerFunc {
	return moveApplication(app, "rewind_application", wizard.Prev)
}

func moveApplication(app app.App, code string, move func(int) int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationId := chi.URLParam(r, "id")

		application, err := loadApplication(r, app.DB, applicationId)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, code, applicationId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db."+code+".get_application", err)
			return
		}
		if application.Submitted {
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, code+".already_submitted")
			return
		}

		step := move(application.CurrentStep)
		_, err = app.ExecContext(r.Context(), `
			UPDATE application
			SET current_step = ?, updated_at = ?
			WHERE id = ?`,
			step,
			time.Now(),
			applicationId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db."+code, err)
			return
		}

		render.JSON(w, r, map[string]any{
			"currentStep": step,
			"steps":       wizard.Steps(step),
		})
	}
}

func SubmitApplication(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationId := chi.URLParam(r, "id")

		application, err := loadApplication(r, app.DB, applicationId)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "submit_application", applicationId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.submit_application.get_application", err)
			return
		}
		if application.Submitted {
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "submit_application.already_submitted")
			return
		}
		if !wizard.IsFinal(application.CurrentStep) {
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "submit_application.not_final_step")
			return
		}

		fields, err := loadFields(r, app.DB, applicationId)
		if err != nil {
			httpx.LogInternalError(w, "db.submit_application.fields", err)
			return
		}

		draft, err := model.DraftFromFields(fields)
		if err != nil {
			httpx.LogInternalError(w, "submit_application.decode_draft", err)
			return
		}

		if errs := draft.Validate(); len(errs) > 0 {
			log.Debugf("submit_application.validate: %d violations", len(errs))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{"errors": errs})
			return
		}

		_, err = app.ExecContext(r.Context(), `
			UPDATE application
			SET submitted = TRUE, updated_at = ?
			WHERE id = ?`,
			time.Now(),
			applicationId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.submit_application", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"id":        applicationId,
			"submitted": true,
		})
	}
}

func AddRequirement(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationId := chi.URLParam(r, "id")

		var body struct {
			Type        string `json:"type"`
			Description string `json:"description"`
			FileName    string `json:"fileName"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if body.Type == "" || body.Description == "" || body.FileName == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "add_requirement.incomplete",
				"requirement type, description and file are all required")
			return
		}

		application, err := loadApplication(r, app.DB, applicationId)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "add_requirement", applicationId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.add_requirement.get_application", err)
			return
		}
		if application.Submitted {
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "add_requirement.already_submitted")
			return
		}

		requirement := model.Requirement{
			ID:          uuid.NewString(),
			Type:        body.Type,
			Description: body.Description,
			Status:      model.RequirementUploaded,
			FileName:    body.FileName,
		}
		_, err = app.ExecContext(r.Context(), `
			INSERT INTO requirement (id, application_id, type, description, status, file_name)
			VALUES (?, ?, ?, ?, ?, ?)`,
			requirement.ID,
			applicationId,
			requirement.Type,
			requirement.Description,
			requirement.Status,
			requirement.FileName,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.add_requirement", err)
			return
		}

		err = touchApplication(r, app.DB, applicationId)
		if err != nil {
			httpx.LogInternalError(w, "db.add_requirement.touch", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, requirement)
	}
}

func DeleteRequirement(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationId := chi.URLParam(r, "id")
		requirementId := chi.URLParam(r, "reqId")

		res, err := app.ExecContext(r.Context(), `
			DELETE FROM requirement
			WHERE id = ?
				AND application_id = ?`,
			requirementId,
			applicationId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.delete_requirement", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.delete_requirement.verify", err)
			return
		}
		if n < 1 {
			httpx.LogNotFound(w, "delete_requirement", requirementId)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ListSubmittedApplications(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := app.QueryContext(r.Context(), `
			SELECT
				a.id, a.updated_at,
				COALESCE((SELECT value FROM application_field WHERE application_id = a.id AND name = 'businessName'), '""'),
				COALESCE((SELECT value FROM application_field WHERE application_id = a.id AND name = 'fullName'), '""')
			FROM application a
			WHERE a.submitted
			ORDER BY a.updated_at DESC`)
		if err != nil {
			httpx.LogInternalError(w, "db.get_submitted_applications", err)
			return
		}
		defer rows.Close()

		type submitted struct {
			ID           string    `json:"id"`
			SubmittedAt  time.Time `json:"submittedAt"`
			BusinessName string    `json:"businessName"`
			FullName     string    `json:"fullName"`
		}

		applications := []submitted{}
		for rows.Next() {
			var s submitted
			var businessNameJson, fullNameJson string
			err = rows.Scan(&s.ID, &s.SubmittedAt, &businessNameJson, &fullNameJson)
			if err != nil {
				httpx.LogInternalError(w, "db.get_submitted_applications.scan", err)
				return
			}
			// field values are stored JSON-encoded
			_ = json.Unmarshal([]byte(businessNameJson), &s.BusinessName)
			_ = json.Unmarshal([]byte(fullNameJson), &s.FullName)

			applications = append(applications, s)
		}

		render.JSON(w, r, map[string]any{
			"applications": applications,
		})
	}
}

func loadApplication(r *http.Request, db *sql.DB, applicationId string) (a model.Application, err error) {
	err = db.QueryRowContext(r.Context(), `
		SELECT id, current_step, submitted, created_at, updated_at
		FROM application
		WHERE id = ?`,
		applicationId,
	).Scan(&a.ID, &a.CurrentStep, &a.Submitted, &a.CreatedAt, &a.UpdatedAt)
	return
}

func loadFields(r *http.Request, db *sql.DB, applicationId string) (map[string]any, error) {
	rows, err := db.QueryContext(r.Context(), `
		SELECT name, value FROM application_field
		WHERE application_id = ?`,
		applicationId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := map[string]any{}
	for rows.Next() {
		var name, valueJson string
		if err := rows.Scan(&name, &valueJson); err != nil {
			return nil, err
		}

		var value any
		if err := json.Unmarshal([]byte(valueJson), &value); err != nil {
			return nil, err
		}
		fields[name] = value
	}
	return fields, rows.Err()
}

func loadRequirements(r *http.Request, db *sql.DB, applicationId string) ([]model.Requirement, error) {
	rows, err := db.QueryContext(r.Context(), `
		SELECT id, type, description, status, file_name
		FROM requirement
		WHERE application_id = ?
		ORDER BY rowid`,
		applicationId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requirements := []model.Requirement{}
	for rows.Next() {
		var req model.Requirement
		if err := rows.Scan(&req.ID, &req.Type, &req.Description, &req.Status, &req.FileName); err != nil {
			return nil, err
		}
		requirements = append(requirements, req)
	}
	return requirements, rows.Err()
}

func touchApplication(r *http.Request, db *sql.DB, applicationId string) error {
	_, err := db.ExecContext(r.Context(), `
		UPDATE application SET updated_at = ? WHERE id = ?`,
		time.Now(),
		applicationId,
	)
	return err
}
