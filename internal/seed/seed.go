package seed

import (
	"log/slog"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
	"github.com/meiyu-dev/salon-manager/backend/internal/repository"
)

// SeedSalonCatalog 插入门店的专长、服务和两者的对应关系。
func SeedSalonCatalog(repo *repository.Repository) {
	specializations := []*domain.Specialization{
		{Name: "剪发"},
		{Name: "染发"},
		{Name: "烫发"},
		{Name: "造型"},
	}

	for _, specialization := range specializations {
		if err := repo.CreateSpecialization(specialization); err != nil {
			slog.Error("无法插入专长", slog.String("name", specialization.Name), slog.String("error", err.Error()))
			return
		}
	}

	services := []struct {
		service           *domain.Service
		specializationIdx int
	}{
		{&domain.Service{Name: "男士理发", Duration: 30, Price: 48}, 0},
		{&domain.Service{Name: "女士剪发", Duration: 45, Price: 88}, 0},
		{&domain.Service{Name: "儿童理发", Duration: 20, Price: 38}, 0},
		{&domain.Service{Name: "全头染发", Duration: 120, Price: 388}, 1},
		{&domain.Service{Name: "补染发根", Duration: 90, Price: 258}, 1},
		{&domain.Service{Name: "挑染", Duration: 150, Price: 488}, 1},
		{&domain.Service{Name: "数码烫", Duration: 180, Price: 588}, 2},
		{&domain.Service{Name: "冷烫", Duration: 150, Price: 428}, 2},
		{&domain.Service{Name: "洗吹造型", Duration: 30, Price: 68}, 3},
		{&domain.Service{Name: "宴会盘发", Duration: 60, Price: 188}, 3},
	}

	serviceIDsBySpecialization := make(map[int64][]int64)
	for _, row := range services {
		if err := repo.CreateService(row.service); err != nil {
			slog.Error("无法插入服务", slog.String("name", row.service.Name), slog.String("error", err.Error()))
			return
		}
		specializationID := specializations[row.specializationIdx].ID
		serviceIDsBySpecialization[specializationID] = append(serviceIDsBySpecialization[specializationID], row.service.ID)
	}

	for specializationID, serviceIDs := range serviceIDsBySpecialization {
		if err := repo.SetSpecializationServices(specializationID, serviceIDs); err != nil {
			slog.Error("无法绑定专长和服务", slog.Int64("specializationID", specializationID), slog.String("error", err.Error()))
			return
		}
	}

	slog.Info("门店服务目录插入成功",
		slog.Int("specializations", len(specializations)),
		slog.Int("services", len(services)),
	)
}
