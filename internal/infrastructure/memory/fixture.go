package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
)

// Fixture formato JSON para precargar el store (STORE_DRIVER=memory).
// Las fechas de venta usan el formato 2006-01-02; days_ago es relativo al momento de carga.
type Fixture struct {
	Companies []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"companies"`
	Warehouses []struct {
		ID        string `json:"id"`
		CompanyID string `json:"company_id"`
		Name      string `json:"name"`
	} `json:"warehouses"`
	Products []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		SKU  string `json:"sku"`
		Type string `json:"product_type"`
	} `json:"products"`
	Inventory []struct {
		ProductID    string `json:"product_id"`
		WarehouseID  string `json:"warehouse_id"`
		CurrentStock int64  `json:"current_stock"`
	} `json:"inventory"`
	Sales []struct {
		ProductID string `json:"product_id"`
		Quantity  int64  `json:"quantity"`
		SaleDate  string `json:"sale_date,omitempty"`
		DaysAgo   *int   `json:"days_ago,omitempty"`
	} `json:"sales"`
	Suppliers []struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		ContactEmail string `json:"contact_email"`
	} `json:"suppliers"`
	ProductSuppliers []struct {
		ProductID  string `json:"product_id"`
		SupplierID string `json:"supplier_id"`
	} `json:"product_suppliers"`
	Thresholds []struct {
		ProductType string `json:"product_type"`
		Threshold   int64  `json:"threshold"`
	} `json:"stock_thresholds"`
}

// LoadFixtureFile lee un fixture JSON desde disco y construye el store.
func LoadFixtureFile(path string, now time.Time) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer fixture: %w", err)
	}
	var fx Fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		return nil, fmt.Errorf("parsear fixture: %w", err)
	}
	return FromFixture(fx, now)
}

// FromFixture construye un store a partir del fixture ya decodificado.
func FromFixture(fx Fixture, now time.Time) (*Store, error) {
	s := NewStore()
	for _, c := range fx.Companies {
		s.AddCompany(entity.Company{ID: c.ID, Name: c.Name})
	}
	for _, w := range fx.Warehouses {
		s.AddWarehouse(entity.Warehouse{ID: w.ID, CompanyID: w.CompanyID, Name: w.Name})
	}
	for _, p := range fx.Products {
		s.AddProduct(entity.Product{ID: p.ID, Name: p.Name, SKU: p.SKU, Type: p.Type})
	}
	for _, i := range fx.Inventory {
		s.SetStock(i.ProductID, i.WarehouseID, i.CurrentStock)
	}
	for _, sale := range fx.Sales {
		var date time.Time
		switch {
		case sale.DaysAgo != nil:
			date = now.AddDate(0, 0, -*sale.DaysAgo)
		case sale.SaleDate != "":
			d, err := time.ParseInLocation("2006-01-02", sale.SaleDate, now.Location())
			if err != nil {
				return nil, fmt.Errorf("venta de %s: fecha inválida %q: %w", sale.ProductID, sale.SaleDate, err)
			}
			date = d
		default:
			return nil, fmt.Errorf("venta de %s: falta sale_date o days_ago", sale.ProductID)
		}
		s.AddSale(entity.Sale{ProductID: sale.ProductID, Quantity: sale.Quantity, SaleDate: date})
	}
	for _, sup := range fx.Suppliers {
		s.AddSupplier(entity.Supplier{ID: sup.ID, Name: sup.Name, ContactEmail: sup.ContactEmail})
	}
	for _, ps := range fx.ProductSuppliers {
		s.LinkSupplier(ps.ProductID, ps.SupplierID)
	}
	for _, t := range fx.Thresholds {
		s.SetThreshold(t.ProductType, t.Threshold)
	}
	return s, nil
}
