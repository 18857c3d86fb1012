// Package export serializes the business table for download.
package export

import (
	"encoding/csv"
	"io"

	"github.com/lgu-leganes/bizportal/model"
	"github.com/xuri/excelize/v2"
)

var headers = []string{
	"businessid", "businessname", "repname", "longlat",
	"barangay", "municipality", "province", "street", "houseno",
	"dtiexpiry", "secexpiry", "cdaexpiry",
}

func row(b model.Business) []string {
	return []string{
		b.BusinessID, b.BusinessName, b.RepName, b.LongLat,
		b.Barangay, b.Municipality, b.Province, b.Street, b.HouseNo,
		orEmpty(b.DTIExpiry), orEmpty(b.SECExpiry), orEmpty(b.CDAExpiry),
	}
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func WriteCSV(w io.Writer, businesses []model.Business) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, b := range businesses {
		if err := cw.Write(row(b)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const sheetName = "Businesses"

func WriteXLSX(w io.Writer, businesses []model.Business) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(sheet)
	if err = f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	writeRow := func(n int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, n)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheetName, cell, &values)
	}

	if err = writeRow(1, headers); err != nil {
		return err
	}
	for i, b := range businesses {
		if err = writeRow(i+2, row(b)); err != nil {
			return err
		}
	}

	return f.Write(w)
}
