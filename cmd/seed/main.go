package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/config"
	"github.com/meiyu-dev/salon-manager/backend/internal/repository"
	"github.com/meiyu-dev/salon-manager/backend/internal/seed"
	"github.com/meiyu-dev/salon-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入门店服务目录, 2: 插入随机员工, 3: 插入随机预约, 4: 插入随机缺勤记录)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		seed.SeedSalonCatalog(repo)
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
			return
		}

		specializations, err := repo.GetAllSpecializations()
		if err != nil {
			slog.Error("无法获取专长列表", slog.String("error", err.Error()))
			return
		}
		if len(specializations) == 0 {
			slog.Error("请先插入门店服务目录 (-op 1)")
			return
		}

		specializationIDs := make([]int64, 0, len(specializations))
		for _, specialization := range specializations {
			specializationIDs = append(specializationIDs, specialization.ID)
		}

		cnt := n
		for i := 0; i < n; i++ {
			employee, err := utils.GenerateRandomEmployee(cfg.Seed.Employee.Password, cfg.Email.UserDomain, specializationIDs)
			if err != nil {
				slog.Error("无法生成随机员工", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateEmployee(employee); err != nil {
				slog.Error("无法插入员工", slog.String("error", err.Error()))
				continue
			}

			// 为新员工生成每周排班
			workingHours := utils.GenerateRandomWeeklyWorkingHours(employee.ID)
			if err := repo.ReplaceEmployeeWorkingHours(employee.ID, workingHours); err != nil {
				slog.Error("无法插入每周排班", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入员工成功", slog.Int("count", n-cnt))
	case 3:
		if n <= 0 {
			slog.Error("请输入合法的预约数量")
			return
		}

		employees, err := repo.GetAllEmployees()
		if err != nil {
			slog.Error("无法获取员工列表", slog.String("error", err.Error()))
			return
		}
		services, err := repo.GetAllServices()
		if err != nil {
			slog.Error("无法获取服务列表", slog.String("error", err.Error()))
			return
		}
		if len(employees) == 0 || len(services) == 0 {
			slog.Error("请先插入员工和门店服务目录")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			employee := employees[rand.Intn(len(employees))]
			service := services[rand.Intn(len(services))]

			appointment := utils.GenerateRandomAppointment(employee.ID, service)
			if err := repo.CreateAppointment(appointment); err != nil {
				slog.Error("无法插入预约", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入预约成功", slog.Int("count", n-cnt))
	case 4:
		if n <= 0 {
			slog.Error("请输入合法的缺勤记录数量")
			return
		}

		employees, err := repo.GetAllEmployees()
		if err != nil {
			slog.Error("无法获取员工列表", slog.String("error", err.Error()))
			return
		}
		if len(employees) == 0 {
			slog.Error("请先插入员工")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			employee := employees[rand.Intn(len(employees))]

			entry := utils.GenerateRandomTimeOffEntry(employee.ID)
			if err := repo.CreateTimeOffEntry(entry); err != nil {
				slog.Error("无法插入缺勤记录", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入缺勤记录成功", slog.Int("count", n-cnt))
	default:
		slog.Error("指定的操作非法")
	}
}
