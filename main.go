package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"ecadmin/aggregation"
	"ecadmin/apiclient"
	"ecadmin/config"
	"ecadmin/console"
	"ecadmin/database"
	"ecadmin/loader"
	"ecadmin/logs"
	"ecadmin/mappers"
	"ecadmin/model"
	"ecadmin/parsers"
	"ecadmin/render"
	"ecadmin/store"
	"ecadmin/syncer"
	"ecadmin/table"
)

func main() {
	configPath := flag.String("config", "", "設定ファイル (default ./ecadmin_config.json)")
	periodFlag := flag.String("period", "monthly", "daily | weekly | monthly")
	csvPath := flag.String("csv", "", "集計する注文CSV (指定時は API を使いません)")
	encodingFlag := flag.String("encoding", "utf-8", "CSV の文字コード (utf-8 | shift_jis)")
	search := flag.String("search", "", "注文一覧の検索文字列")
	column := flag.String("column", "", "検索する列 (default: userEmail)")
	page := flag.Int("page", 1, "注文一覧のページ")
	setStatus := flag.String("set-status", "", "注文ステータスの変更 (例: 3:Shipped)")
	journal := flag.Int("journal", 0, "直近の操作履歴を N 件表示")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	if *configPath != "" {
		_, err = config.LoadConfigFrom(*configPath)
	} else {
		_, err = config.LoadConfig()
	}
	if err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
	}
	cfg := config.GetConfig()

	logger, err := logs.CreateLogger(cfg.LogTarget, logs.ParseLevel(cfg.LogLevel))
	if err != nil {
		log.Fatalf("logger setup error: %v", err)
	}

	period, err := model.ParsePeriod(*periodFlag)
	if err != nil {
		log.Fatalf("invalid -period: %v", err)
	}
	aggOpts := []aggregation.Option{aggregation.WithLogger(logger)}
	if loc, err := cfg.Location(); err != nil {
		log.Printf("WARN: %v. Using UTC.", err)
	} else {
		aggOpts = append(aggOpts, aggregation.WithLocation(loc))
	}
	if day, err := cfg.WeekStartDay(); err != nil {
		log.Printf("WARN: %v. Weeks start on Monday.", err)
	} else {
		aggOpts = append(aggOpts, aggregation.WithWeekStart(day))
	}

	st := store.New()

	if *csvPath != "" {
		enc, err := parsers.ParseEncoding(*encodingFlag)
		if err != nil {
			log.Fatalf("invalid -encoding: %v", err)
		}
		if err := loadCSV(st, *csvPath, enc); err != nil {
			log.Fatalf("CSV load error: %v", err)
		}
		series := aggregation.AggregateSales(st.Orders.All(), period, aggOpts...)
		if err := render.Series(os.Stdout, series); err != nil {
			log.Fatalf("render error: %v", err)
		}
		tbl := newOrdersTable(st, cfg, *column)
		tbl.SetSearchText(*search)
		printOrders(tbl, *page)
		return
	}

	log.Println("Opening cache database...")
	db, err := database.Open(cfg.CacheDBPath)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer db.Close()
	if err := loader.InitDatabase(db); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}

	mode, err := syncer.ParseBusyMode(cfg.BusyMode)
	if err != nil {
		log.Printf("WARN: %v. Using counted busy mode.", err)
	}
	busy := syncer.NewBusyTracker(mode)
	busy.Subscribe(func(b bool) {
		if b {
			logger.Debug("loading")
		}
	})
	jr := database.NewJournal(db)
	coord := syncer.New(
		syncer.WithBusyTracker(busy),
		syncer.WithNotifier(syncer.NotifierFunc(func(n syncer.Notification) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Level, n.Message)
		})),
		syncer.WithJournal(jr),
		syncer.WithLogger(logger),
	)

	client := apiclient.NewHTTPClient(cfg.APIBaseURL, cfg.APIToken, apiclient.WithLogger(logger))
	ld := loader.New(client, coord, st,
		loader.WithLogger(logger),
		loader.WithSnapshot(db),
		loader.WithAggregation(aggOpts...))

	dash, err := ld.LoadDashboard(ctx, period)
	if err != nil {
		log.Fatalf("dashboard load error: %v", err)
	}

	if *setStatus != "" {
		cs := console.New(client, coord, st, ld, console.WithLogger(logger))
		if err := applyStatus(ctx, cs, *setStatus); err != nil {
			log.Printf("WARN: status change failed: %v", err)
		}
	}

	if err := render.KPIs(os.Stdout, dash.KPIs); err != nil {
		log.Fatalf("render error: %v", err)
	}
	fmt.Println()
	if err := render.Series(os.Stdout, dash.Series); err != nil {
		log.Fatalf("render error: %v", err)
	}
	fmt.Println()
	tbl := newOrdersTable(st, cfg, *column)
	if *search != "" {
		deb := table.NewDebouncer(cfg.Debounce())
		select {
		case err := <-ld.SearchOrders(ctx, deb, tbl, *search):
			if err != nil {
				log.Printf("WARN: order search refetch failed: %v", err)
			}
		case <-ctx.Done():
			deb.Stop()
		}
	}
	printOrders(tbl, *page)

	if *journal > 0 {
		entries, err := jr.Recent(ctx, *journal)
		if err != nil {
			log.Printf("WARN: %v", err)
			return
		}
		fmt.Println()
		for _, e := range entries {
			mark := "ok"
			if !e.OK {
				mark = "NG"
			}
			fmt.Printf("%s  %-10s %s  %s\n", e.At.Local().Format("2006-01-02 15:04:05"), e.Tag, mark, e.Message)
		}
	}
}

func loadCSV(st *store.Store, path string, enc parsers.Encoding) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer f.Close()

	orders, err := parsers.ParseOrdersCSV(f, enc)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	st.Orders.ReplaceAll(orders)
	log.Printf("Loaded %d orders from %s", len(orders), path)
	return nil
}

func newOrdersTable(st *store.Store, cfg config.Config, column string) *table.Table[table.Row] {
	tbl := mappers.NewOrdersTable(st.Orders.Numbered())
	tbl.SetPageSize(cfg.PageSize)
	if column != "" {
		if err := tbl.SetSearchColumn(column); err != nil {
			log.Printf("WARN: %v", err)
		}
	}
	return tbl
}

func printOrders(tbl *table.Table[table.Row], page int) {
	tbl.SetPage(page - 1)
	if err := render.Table(os.Stdout, "Recent Orders", tbl.Columns(), tbl.View()); err != nil {
		log.Printf("WARN: render error: %v", err)
	}
}

// applyStatus は "表示ID:ステータス" 形式の指定で注文ステータスを変更します。
func applyStatus(ctx context.Context, cs *console.Console, spec string) error {
	idPart, statusPart, ok := strings.Cut(spec, ":")
	if !ok {
		return fmt.Errorf("expected ID:Status, got %q", spec)
	}
	id, err := strconv.Atoi(strings.TrimSpace(idPart))
	if err != nil {
		return fmt.Errorf("invalid order id %q: %w", idPart, err)
	}
	status := model.ParseOrderStatus(statusPart)
	if !strings.EqualFold(string(status), strings.TrimSpace(statusPart)) {
		return fmt.Errorf("unknown order status %q", statusPart)
	}
	return cs.SetOrderStatus(ctx, id, status)
}
