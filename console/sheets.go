package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

const sheetTime = "2006-01-02 15:04:05"

var productColumns = []string{
	"ID", "Name", "Slug", "Description", "Price", "MarketPrice", "ImageURL",
	"Images", "Category", "Trending", "Stock", "Active", "CreatedAt",
}

// ProductSheet renders products as a workbook that ImportProducts can read back.
func ProductSheet(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range productColumns {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Slug)
		row.AddCell().SetString(p.Description)
		row.AddCell().SetString(p.Price.StringFixed(2))
		market := ""
		if p.CompareAtPrice.Valid {
			market = p.CompareAtPrice.Decimal.StringFixed(2)
		}
		row.AddCell().SetString(market)
		row.AddCell().SetString(p.PrimaryImage())
		extra := []string{}
		if len(p.Images) > 1 {
			extra = p.Images[1:]
		}
		row.AddCell().SetString(strings.Join(extra, ","))
		category := ""
		if p.Category != nil {
			category = p.Category.Slug
		}
		row.AddCell().SetString(category)
		row.AddCell().SetBool(p.IsFeatured)
		row.AddCell().SetInt(p.StockQuantity)
		row.AddCell().SetBool(p.IsActive)
		row.AddCell().SetString(p.CreatedAt.Format(sheetTime))
	}
	return file, nil
}

var orderColumns = []string{
	"ID", "Date", "Customer", "Email", "Phone", "Address", "Items",
	"Payment", "FastDelivery", "DeliveryFee", "Total", "Status", "Account",
}

// OrderSheet renders orders for the operator's records.
func OrderSheet(orders []models.Order) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range orderColumns {
		header.AddCell().SetString(h)
	}

	for _, o := range orders {
		email, account := "", "guest"
		if o.GuestInfo != nil {
			email = o.GuestInfo.Email
		}
		if o.UserID != nil {
			account = *o.UserID
		}

		items := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, fmt.Sprintf("%s x %d", it.ProductName, it.Quantity))
		}

		row := sheet.AddRow()
		row.AddCell().SetString(o.ID)
		row.AddCell().SetString(o.CreatedAt.Format(sheetTime))
		row.AddCell().SetString(o.ShippingAddress.FullName())
		row.AddCell().SetString(email)
		row.AddCell().SetString(o.ShippingAddress.Phone)
		row.AddCell().SetString(o.ShippingAddress.String())
		row.AddCell().SetString(strings.Join(items, "; "))
		row.AddCell().SetString(string(o.PaymentMethod))
		row.AddCell().SetBool(o.FastDelivery)
		row.AddCell().SetString(o.DeliveryFee.StringFixed(2))
		row.AddCell().SetString(o.Total.StringFixed(2))
		row.AddCell().SetString(string(o.Status))
		row.AddCell().SetString(account)
	}
	return file, nil
}

type ImportRow struct {
	Line int
	ID   string
	Form ProductForm
	// Err is set when the row could not be read.
	Err error
}

type ImportReport struct {
	Created int      `json:"created_count"`
	Updated int      `json:"updated_count"`
	Skipped int      `json:"skipped_count"`
	Errors  []string `json:"errors,omitempty"`
}

// ReadProductSheet parses the first sheet of a workbook laid out like
// ProductSheet. Columns are matched by header name; rows without a name are skipped.
func ReadProductSheet(r io.ReaderAt, size int64) ([]ImportRow, error) {
	book, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		return nil, fmt.Errorf("parse workbook: %w", err)
	}
	if len(book.Sheets) == 0 || len(book.Sheets[0].Rows) < 2 {
		return nil, errors.New("workbook is empty or missing header row")
	}

	sheet := book.Sheets[0]
	col := map[string]int{}
	for i, cell := range sheet.Rows[0].Cells {
		col[strings.ToLower(strings.TrimSpace(cell.String()))] = i
	}
	if _, ok := col["name"]; !ok {
		return nil, errors.New("header row has no Name column")
	}

	var rows []ImportRow
	for i, cells := range sheet.Rows[1:] {
		get := func(name string) string {
			idx, ok := col[strings.ToLower(name)]
			if !ok || cells == nil || idx >= len(cells.Cells) {
				return ""
			}
			return strings.TrimSpace(cells.Cells[idx].String())
		}
		if get("Name") == "" {
			continue
		}

		form := ProductForm{
			Name:        get("Name"),
			Description: get("Description"),
			ImageURL:    get("ImageURL"),
			Category:    get("Category"),
			Trending:    parseBool(get("Trending")),
		}
		row := ImportRow{Line: i + 2, ID: get("ID")}
		if form.Price, err = decimal.NewFromString(get("Price")); err != nil {
			row.Err = &ValidationError{Message: "Price must be a number"}
		}
		if m, err := decimal.NewFromString(get("MarketPrice")); err == nil {
			form.CompareAtPrice = &m
		}
		if extra := get("Images"); extra != "" {
			form.Images = strings.Split(extra, ",")
		}
		form.Stock, _ = strconv.Atoi(get("Stock"))
		if v := get("Active"); v != "" {
			active := parseBool(v)
			form.Active = &active
		}

		row.Form = form
		rows = append(rows, row)
	}
	return rows, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// ImportProducts updates rows whose ID matches an existing product and
// creates the rest. Invalid rows are skipped and reported.
func (c *Console) ImportProducts(ctx context.Context, rows []ImportRow) ImportReport {
	var report ImportReport
	for _, r := range rows {
		err := r.Err
		updated := false
		if err == nil && r.ID != "" {
			_, err = c.UpdateProduct(ctx, r.ID, r.Form)
			updated = err == nil
			if errors.Is(err, ErrProductNotFound) {
				err = nil
			}
		}
		if err == nil && !updated {
			_, err = c.CreateProduct(ctx, r.Form)
		}

		switch {
		case err != nil:
			report.Skipped++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", r.Line, err))
		case updated:
			report.Updated++
		default:
			report.Created++
		}
	}
	c.log.Info().Int("created", report.Created).Int("updated", report.Updated).Int("skipped", report.Skipped).Msg("product import finished")
	return report
}
