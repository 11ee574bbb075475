package migration

import (
	"errors"

	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/repository"
	"github.com/damoang/pcmall-backend/pkg/menutree"
	pkglogger "github.com/damoang/pcmall-backend/pkg/logger"
	"gorm.io/gorm"
)

// AdminSeeder creates the first admin account when none exists
type AdminSeeder interface {
	EnsureAdmin(username, password, email string) (bool, error)
}

// SeedOptions initial admin credentials. Empty username skips the admin seed.
type SeedOptions struct {
	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

// Seed inserts default data. Each part only runs on an empty table,
// settings only add missing keys.
func Seed(db *gorm.DB, admins AdminSeeder, opts SeedOptions) error {
	log := pkglogger.WithComponent("seed")

	if err := seedIfEmpty(db, &domain.Category{}, seedCategories); err != nil {
		return err
	}
	if err := seedIfEmpty(db, &domain.Menu{}, seedMenus); err != nil {
		return err
	}
	if err := repository.NewSettingRepository(db).InsertMissing(domain.DefaultSettings); err != nil {
		return err
	}

	if opts.AdminUsername == "" || admins == nil {
		return nil
	}
	if opts.AdminPassword == "" {
		return errors.New("admin password is required to seed the admin account")
	}
	created, err := admins.EnsureAdmin(opts.AdminUsername, opts.AdminPassword, opts.AdminEmail)
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("username", opts.AdminUsername).Msg("initial admin account created")
	}
	return nil
}

func seedIfEmpty(db *gorm.DB, model interface{}, seed func(tx *gorm.DB) error) error {
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Transaction(seed)
}

type seedCategory struct {
	name     string
	slug     string
	children []seedCategory
}

// PC 견적 슬롯이 참조하는 slug 와 맞춰야 함
var defaultCategories = []seedCategory{
	{name: "PC 부품", slug: "components", children: []seedCategory{
		{name: "CPU", slug: "cpu"},
		{name: "메인보드", slug: "motherboards"},
		{name: "메모리", slug: "memory"},
		{name: "그래픽카드", slug: "graphics-cards"},
		{name: "저장장치", slug: "storage"},
		{name: "파워", slug: "power-supplies"},
		{name: "케이스", slug: "cases"},
		{name: "쿨러", slug: "cooling"},
	}},
	{name: "주변기기", slug: "peripherals", children: []seedCategory{
		{name: "모니터", slug: "monitors"},
		{name: "키보드/마우스", slug: "keyboards-mice"},
	}},
	{name: "완성형 PC", slug: "prebuilt-pcs"},
}

func seedCategories(tx *gorm.DB) error {
	var insert func(nodes []seedCategory, parentID *int64) error
	insert = func(nodes []seedCategory, parentID *int64) error {
		for i, n := range nodes {
			cat := &domain.Category{
				ParentID:  parentID,
				Name:      n.name,
				Slug:      n.slug,
				SortOrder: i + 1,
				IsActive:  true,
			}
			if err := tx.Create(cat).Error; err != nil {
				return err
			}
			if err := insert(n.children, &cat.ID); err != nil {
				return err
			}
		}
		return nil
	}
	return insert(defaultCategories, nil)
}

type seedItem struct {
	label     string
	linkType  menutree.LinkType
	linkValue string
	url       string
	target    string
	children  []seedItem
}

var defaultMenus = []struct {
	name     string
	location string
	items    []seedItem
}{
	{"Header", "header", []seedItem{
		{label: "홈", linkType: menutree.LinkHome},
		{label: "PC 부품", linkType: menutree.LinkCategory, linkValue: "components", children: []seedItem{
			{label: "CPU", linkType: menutree.LinkCategory, linkValue: "cpu"},
			{label: "그래픽카드", linkType: menutree.LinkCategory, linkValue: "graphics-cards"},
			{label: "메모리", linkType: menutree.LinkCategory, linkValue: "memory"},
			{label: "저장장치", linkType: menutree.LinkCategory, linkValue: "storage"},
		}},
		{label: "주변기기", linkType: menutree.LinkCategory, linkValue: "peripherals"},
		{label: "PC 견적", linkType: menutree.LinkCustom, url: "/pc-builder"},
		{label: "매장 안내", linkType: menutree.LinkShop},
	}},
	{"Footer", "footer", []seedItem{
		{label: "회사 소개", linkType: menutree.LinkAbout},
		{label: "고객센터", linkType: menutree.LinkContact},
		{label: "배송 안내", linkType: menutree.LinkPage, linkValue: "shipping"},
		{label: "A/S 정책", linkType: menutree.LinkPage, linkValue: "warranty"},
	}},
}

func seedMenus(tx *gorm.DB) error {
	var insert func(menuID int64, nodes []seedItem, parentID *int64) error
	insert = func(menuID int64, nodes []seedItem, parentID *int64) error {
		for i, n := range nodes {
			target := n.target
			if target == "" {
				target = domain.TargetSelf
			}
			item := &domain.MenuItem{
				MenuID:    menuID,
				ParentID:  parentID,
				Label:     n.label,
				LinkType:  string(n.linkType),
				LinkValue: n.linkValue,
				URL:       n.url,
				Target:    target,
				IsActive:  true,
				SortOrder: i + 1,
			}
			if err := tx.Create(item).Error; err != nil {
				return err
			}
			if err := insert(menuID, n.children, &item.ID); err != nil {
				return err
			}
		}
		return nil
	}

	for _, m := range defaultMenus {
		menu := &domain.Menu{Name: m.name, Location: m.location, IsActive: true}
		if err := tx.Create(menu).Error; err != nil {
			return err
		}
		if err := insert(menu.ID, m.items, nil); err != nil {
			return err
		}
	}
	return nil
}
