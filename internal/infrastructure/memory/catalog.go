package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.CompanyRepository = (*CompanyRepo)(nil)
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.FarmRepository    = (*FarmRepo)(nil)
	_ repository.FleetRepository   = (*FleetRepo)(nil)
)

// CompanyRepo empresas y módulos contratados.
type CompanyRepo struct{ a access }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.companies[c.ID]; ok {
			return domain.ErrDuplicate
		}
		d.companies[c.ID] = *c
		return nil
	})
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.a.read(func(d *data) error {
		if c, ok := d.companies[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) GetModule(_ context.Context, companyID, moduleName string) (*entity.CompanyModule, error) {
	var out *entity.CompanyModule
	err := r.a.read(func(d *data) error {
		if m, ok := d.modules[companyID+"|"+moduleName]; ok {
			if m.ExpiresAt != nil {
				exp := *m.ExpiresAt
				m.ExpiresAt = &exp
			}
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) UpsertModule(_ context.Context, m *entity.CompanyModule) error {
	return r.a.write(func(d *data) error {
		v := *m
		if m.ExpiresAt != nil {
			exp := *m.ExpiresAt
			v.ExpiresAt = &exp
		}
		d.modules[m.CompanyID+"|"+m.ModuleName] = v
		return nil
	})
}

// UserRepo usuarios; el email es único en todo el sistema.
type UserRepo struct{ a access }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.a.write(func(d *data) error {
		for _, x := range d.users {
			if strings.EqualFold(x.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id })
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepo) GetByEmailAndCompany(_ context.Context, email, companyID string) (*entity.User, error) {
	return r.find(func(u entity.User) bool {
		return u.CompanyID == companyID && strings.EqualFold(u.Email, email)
	})
}

func (r *UserRepo) find(match func(entity.User) bool) (*entity.User, error) {
	var out *entity.User
	err := r.a.read(func(d *data) error {
		for _, u := range d.users {
			if match(u) {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

// ProductRepo catálogo de insumos. SearchKey es único por empresa.
type ProductRepo struct{ a access }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.a.write(func(d *data) error {
		for _, x := range d.products {
			if x.CompanyID == p.CompanyID && x.SearchKey == p.SearchKey {
				return domain.ErrDuplicate
			}
		}
		d.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(func(d *data) error {
		if p, ok := d.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetBySearchKey(_ context.Context, companyID, key string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(func(d *data) error {
		for _, p := range d.products {
			if p.CompanyID == companyID && p.SearchKey == key {
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		for _, x := range d.products {
			if x.ID != p.ID && x.CompanyID == p.CompanyID && x.SearchKey == p.SearchKey {
				return domain.ErrDuplicate
			}
		}
		d.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) UpdateReferencePrice(_ context.Context, productID string, price decimal.Decimal) error {
	return r.a.write(func(d *data) error {
		p, ok := d.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		p.ReferencePrice = price
		d.products[productID] = p
		return nil
	})
}

func (r *ProductRepo) ListByCompany(_ context.Context, companyID, search string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.a.read(func(d *data) error {
		var list []entity.Product
		for _, p := range d.products {
			if p.CompanyID != companyID {
				continue
			}
			if search != "" && !strings.Contains(p.SearchKey, search) {
				continue
			}
			list = append(list, p)
		}
		slices.SortFunc(list, func(a, b entity.Product) int { return strings.Compare(a.SearchKey, b.SearchKey) })
		for _, p := range page(list, limit, offset) {
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) IsReferenced(_ context.Context, productID string) (bool, error) {
	var used bool
	err := r.a.read(func(d *data) error {
		for _, rec := range d.records {
			if rec.ProductID == productID {
				used = true
				return nil
			}
		}
		for _, o := range d.serviceOrders {
			for _, l := range o.Lines {
				if l.ProductID == productID {
					used = true
					return nil
				}
			}
		}
		for _, po := range d.purchaseOrders {
			if po.ProductID == productID {
				used = true
				return nil
			}
		}
		return nil
	})
	return used, err
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.products, id)
		return nil
	})
}

// FarmRepo haciendas y talhões.
type FarmRepo struct{ a access }

func (r *FarmRepo) Create(_ context.Context, f *entity.Farm) error {
	return r.a.write(func(d *data) error {
		d.farms[f.ID] = *f
		return nil
	})
}

func (r *FarmRepo) GetByID(_ context.Context, id string) (*entity.Farm, error) {
	var out *entity.Farm
	err := r.a.read(func(d *data) error {
		if f, ok := d.farms[id]; ok {
			out = &f
		}
		return nil
	})
	return out, err
}

func (r *FarmRepo) Update(_ context.Context, f *entity.Farm) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.farms[f.ID]; !ok {
			return domain.ErrNotFound
		}
		d.farms[f.ID] = *f
		return nil
	})
}

func (r *FarmRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Farm, error) {
	var out []*entity.Farm
	err := r.a.read(func(d *data) error {
		var list []entity.Farm
		for _, f := range d.farms {
			if f.CompanyID == companyID {
				list = append(list, f)
			}
		}
		slices.SortFunc(list, func(a, b entity.Farm) int { return strings.Compare(a.Name, b.Name) })
		for _, f := range page(list, limit, offset) {
			out = append(out, &f)
		}
		return nil
	})
	return out, err
}

func (r *FarmRepo) CreateField(_ context.Context, f *entity.Field) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.farms[f.FarmID]; !ok {
			return domain.ErrNotFound
		}
		d.fields[f.ID] = *f
		return nil
	})
}

func (r *FarmRepo) GetField(_ context.Context, id string) (*entity.Field, error) {
	var out *entity.Field
	err := r.a.read(func(d *data) error {
		if f, ok := d.fields[id]; ok {
			out = &f
		}
		return nil
	})
	return out, err
}

func (r *FarmRepo) ListFields(_ context.Context, farmID string) ([]*entity.Field, error) {
	var out []*entity.Field
	err := r.a.read(func(d *data) error {
		var list []entity.Field
		for _, f := range d.fields {
			if f.FarmID == farmID {
				list = append(list, f)
			}
		}
		slices.SortFunc(list, func(a, b entity.Field) int { return strings.Compare(a.Name, b.Name) })
		for _, f := range list {
			out = append(out, &f)
		}
		return nil
	})
	return out, err
}

// FleetRepo culturas, máquinas y operadores.
type FleetRepo struct{ a access }

func (r *FleetRepo) CreateCrop(_ context.Context, c *entity.Crop) error {
	return r.a.write(func(d *data) error { d.crops[c.ID] = *c; return nil })
}

func (r *FleetRepo) GetCrop(_ context.Context, id string) (*entity.Crop, error) {
	return get(r.a, func(d *data) map[string]entity.Crop { return d.crops }, id)
}

func (r *FleetRepo) ListCrops(_ context.Context, companyID string) ([]*entity.Crop, error) {
	return listBy(r.a, func(d *data) map[string]entity.Crop { return d.crops },
		func(c entity.Crop) bool { return c.CompanyID == companyID },
		func(a, b entity.Crop) int { return strings.Compare(a.Name, b.Name) })
}

func (r *FleetRepo) CreateMachine(_ context.Context, m *entity.Machine) error {
	return r.a.write(func(d *data) error { d.machines[m.ID] = *m; return nil })
}

func (r *FleetRepo) GetMachine(_ context.Context, id string) (*entity.Machine, error) {
	return get(r.a, func(d *data) map[string]entity.Machine { return d.machines }, id)
}

func (r *FleetRepo) ListMachines(_ context.Context, companyID string) ([]*entity.Machine, error) {
	return listBy(r.a, func(d *data) map[string]entity.Machine { return d.machines },
		func(m entity.Machine) bool { return m.CompanyID == companyID },
		func(a, b entity.Machine) int { return strings.Compare(a.Name, b.Name) })
}

func (r *FleetRepo) CreateOperator(_ context.Context, o *entity.Operator) error {
	return r.a.write(func(d *data) error { d.operators[o.ID] = *o; return nil })
}

func (r *FleetRepo) GetOperator(_ context.Context, id string) (*entity.Operator, error) {
	return get(r.a, func(d *data) map[string]entity.Operator { return d.operators }, id)
}

func (r *FleetRepo) ListOperators(_ context.Context, companyID string) ([]*entity.Operator, error) {
	return listBy(r.a, func(d *data) map[string]entity.Operator { return d.operators },
		func(o entity.Operator) bool { return o.CompanyID == companyID },
		func(a, b entity.Operator) int { return strings.Compare(a.Name, b.Name) })
}

func get[T any](a access, table func(d *data) map[string]T, id string) (*T, error) {
	var out *T
	err := a.read(func(d *data) error {
		if v, ok := table(d)[id]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func listBy[T any](a access, table func(d *data) map[string]T, keep func(T) bool, cmp func(a, b T) int) ([]*T, error) {
	var out []*T
	err := a.read(func(d *data) error {
		var list []T
		for _, v := range table(d) {
			if keep(v) {
				list = append(list, v)
			}
		}
		slices.SortFunc(list, cmp)
		for _, v := range list {
			out = append(out, &v)
		}
		return nil
	})
	return out, err
}
