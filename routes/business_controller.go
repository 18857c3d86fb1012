package routes

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/lgu-leganes/bizportal/app"
	"github.com/lgu-leganes/bizportal/compliance"
	"github.com/lgu-leganes/bizportal/export"
	"github.com/lgu-leganes/bizportal/httpx"
	"github.com/lgu-leganes/bizportal/log"
	"github.com/lgu-leganes/bizportal/model"
)

func ListBusinesses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businesses, err := loadFilteredBusinesses(r, app.DB)
		if err != nil {
			httpx.LogInternalError(w, "db.get_businesses", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"businesses": businesses,
		})
	}
}

func GetBusinessById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessId := chi.URLParam(r, "id")

		var (
			info    model.BusinessNameInfo
			address model.BusinessAddress
			rep     model.BusinessRepresentative
			permits model.BusinessPermits
			dtiexp  sql.NullString
			secexp  sql.NullString
			cdaexp  sql.NullString
		)
		err := app.QueryRowContext(r.Context(), `
			SELECT
				b.businessid, d.ismain, b.businessname, d.dateestablished,
				d.ownershiptype, d.registeredceo, d.tradename, d.status,
				b.province, b.municipality, b.barangay, b.street, b.houseno,
				b.longlat, d.cellno, d.email,
				b.repname, d.repposition, d.repcellno, d.repemail,
				d.dtino, b.dtiexpiry, d.secno, b.secexpiry, d.cdano, b.cdaexpiry
			FROM business b
			JOIN business_detail d ON d.businessid = b.businessid
			WHERE b.businessid = ?`,
			businessId,
		).Scan(
			&info.BusinessID, &info.IsMain, &info.BusinessName, &info.DateEstablished,
			&info.OwnershipType, &info.RegisteredCEO, &info.TradeName, &info.Status,
			&address.Province, &address.Municipality, &address.Barangay, &address.Street, &address.HouseNo,
			&address.LongLat, &address.CellNo, &address.Email,
			&rep.RepName, &rep.RepPosition, &rep.CellNo, &rep.Email,
			&permits.DTINo, &dtiexp, &permits.SECNo, &secexp, &permits.CDANo, &cdaexp,
		)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "get_business", businessId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_business", err)
			return
		}
		permits.DTIExpiry = dtiexp.String
		permits.SECExpiry = secexp.String
		permits.CDAExpiry = cdaexp.String

		details := model.BusinessDetails{
			BusinessInfo: &info,
			Address:      &address,
		}
		// contact and permit sections are optional in the source dataset
		if rep.RepPosition != "" {
			details.Representative = &rep
		}
		if permits.DTINo != "" {
			details.Requirements = &permits
		}

		render.JSON(w, r, details)
	}
}

func ExportBusinesses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := r.URL.Query().Get("format")
		if format == "" {
			format = "csv"
		}

		businesses, err := loadFilteredBusinesses(r, app.DB)
		if err != nil {
			httpx.LogInternalError(w, "db.export_businesses", err)
			return
		}

		switch format {
		case "csv":
			filename := fmt.Sprintf("businesses_%s.csv", time.Now().Format("2006-01-02"))
			w.Header().Set("content-type", "text/csv")
			w.Header().Set("content-disposition", `attachment; filename="`+filename+`"`)
			err = export.WriteCSV(w, businesses)
		case "xlsx":
			w.Header().Set("content-type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			w.Header().Set("content-disposition", `attachment; filename="businesses.xlsx"`)
			err = export.WriteXLSX(w, businesses)
		default:
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "export_businesses.format",
				"unsupported export format: "+format)
			return
		}
		if err != nil {
			// headers already sent, nothing more we can do for the client
			log.Errorf("export_businesses.write: %s", err)
		}
	}
}

// loadFilteredBusinesses applies the request's compliance filter, when any,
// on top of the full directory.
func loadFilteredBusinesses(r *http.Request, db *sql.DB) ([]model.Business, error) {
	businesses, err := loadBusinesses(r, db)
	if err != nil {
		return nil, err
	}

	filter := r.URL.Query().Get("compliance")
	today := time.Now()
	filtered := []model.Business{}
	for _, b := range businesses {
		status := compliance.Classify(today, b.DTIExpiry, b.SECExpiry, b.CDAExpiry)
		if compliance.MatchesFilter(filter, status) {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

func loadBusinesses(r *http.Request, db *sql.DB) ([]model.Business, error) {
	rows, err := db.QueryContext(r.Context(), `
		SELECT
			businessid, businessname, repname, longlat,
			barangay, municipality, province, street, houseno,
			dtiexpiry, secexpiry, cdaexpiry
		FROM business
		ORDER BY businessid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	businesses := []model.Business{}
	for rows.Next() {
		var b model.Business
		err = rows.Scan(
			&b.BusinessID, &b.BusinessName, &b.RepName, &b.LongLat,
			&b.Barangay, &b.Municipality, &b.Province, &b.Street, &b.HouseNo,
			&b.DTIExpiry, &b.SECExpiry, &b.CDAExpiry,
		)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, b)
	}
	return businesses, rows.Err()
}
