package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/agrismart/agrismart-cli/internal/client/guard"
	"github.com/agrismart/agrismart-cli/internal/client/models"
	"github.com/agrismart/agrismart-cli/internal/common"
)

// Market lists marketplace produce, optionally filtered by category. Offline
// it falls back to the placeholder listings.
func (a *App) Market(ctx context.Context, category string) error {
	if !a.visit(guard.RouteMarket) {
		return nil
	}

	products, err := a.backend.Products(ctx, category, "")
	if err != nil {
		if !errors.Is(err, common.ErrUnavailable) {
			return a.reportErr("Could not load marketplace:", err)
		}
		fmt.Fprintln(a.out, a.tr("server_unreachable"))
		products = a.fallback.Products()
	}

	for _, p := range products {
		organic := ""
		if p.Organic() {
			organic = " [organic]"
		}
		fmt.Fprintf(a.out, "#%d  %-25s ₹%.0f/%s  %s%s\n", p.ID, common.Truncate(p.Name, 25), p.Price, p.Unit, p.SellerName, organic)
	}
	return nil
}

// Sell walks through listing produce for sale.
func (a *App) Sell(ctx context.Context) error {
	if !a.visit(guard.RouteMarket) {
		return nil
	}

	name, err := getSimpleText(a.reader, "Product name", a.out)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category (Grains/Vegetables/Fruits/Dairy/Fertilizers)", a.out)
	if err != nil {
		return err
	}
	priceText, err := getSimpleText(a.reader, "Price per unit (₹)", a.out)
	if err != nil {
		return err
	}
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil || price <= 0 {
		fmt.Fprintln(a.out, "Price must be a positive number.")
		return common.ErrValidation
	}
	unit, err := getSimpleText(a.reader, "Unit (kg/liter/quintal)", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	organicText, err := getSimpleText(a.reader, "Organic? (y/n)", a.out)
	if err != nil {
		return err
	}

	p := models.NewProduct{
		Name:        name,
		Category:    category,
		Description: description,
		Price:       price,
		Unit:        unit,
	}
	if organicText == "y" || organicText == "yes" {
		p.IsOrganic = 1
	}

	id, err := a.backend.CreateProduct(ctx, p)
	if err != nil {
		return a.reportErr("Could not create listing:", err)
	}
	fmt.Fprintf(a.out, "Listed as #%d\n", id)
	return nil
}

// Tips shows knowledge-hub articles in the active language, falling back to
// the bundled ones when offline.
func (a *App) Tips(ctx context.Context) error {
	if !a.visit(guard.RouteTips) {
		return nil
	}

	tips, err := a.backend.Tips(ctx, "", a.prefs.Language())
	if err != nil {
		if !errors.Is(err, common.ErrUnavailable) {
			return a.reportErr("Could not load tips:", err)
		}
		fmt.Fprintln(a.out, a.tr("server_unreachable"))
		tips = a.fallback.Tips(a.prefs.Language())
	}

	for _, tip := range tips {
		fmt.Fprintf(a.out, "[%s] %s — %s\n", tip.Category, tip.Title, tip.AuthorName)
		fmt.Fprintf(a.out, "    %s\n", common.Truncate(tip.Content, 120))
	}
	return nil
}

// Schemes lists government support schemes.
func (a *App) Schemes(ctx context.Context) error {
	if !a.visit(guard.RouteSchemes) {
		return nil
	}

	schemes, err := a.backend.Schemes(ctx, "", "")
	if err != nil {
		return a.reportErr("Could not load schemes:", err)
	}
	if len(schemes) == 0 {
		fmt.Fprintln(a.out, "No schemes found.")
		return nil
	}
	for _, s := range schemes {
		fmt.Fprintf(a.out, "%s [%s]\n", s.Name, s.Category)
		fmt.Fprintf(a.out, "    %s\n", common.Truncate(s.Description, 120))
		if s.Link != "" {
			fmt.Fprintf(a.out, "    %s\n", s.Link)
		}
	}
	return nil
}
