package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jarwatch/jarwatch/internal/chart"
	"github.com/jarwatch/jarwatch/internal/config"
	"github.com/jarwatch/jarwatch/internal/history"
	"github.com/jarwatch/jarwatch/internal/integrations/monobank"
	"github.com/jarwatch/jarwatch/internal/integrations/telegram"
	"github.com/jarwatch/jarwatch/internal/models"
	"github.com/jarwatch/jarwatch/internal/report"
	"github.com/jarwatch/jarwatch/internal/utils/email"
)

// Service runs poll cycles and keeps the latest results for the HTTP surface
type Service struct {
	cfg  *config.Config
	bank *monobank.Client
	tg   *telegram.Client
	mail *email.Sender // nil when SMTP is not configured
	log  *logrus.Logger

	mu               sync.RWMutex
	lastReports      []models.JarReport
	lastChart        []byte
	lastHistoryChart []byte
	lastUpdated      string
}

// NewService initializes a new service
func NewService(cfg *config.Config, bank *monobank.Client, tg *telegram.Client, mail *email.Sender, log *logrus.Logger) *Service {
	return &Service{cfg: cfg, bank: bank, tg: tg, mail: mail, log: log}
}

// RunCycle performs one full poll: fetch balances, update history, render the
// report and charts, deliver them, and persist the store. Delivery failures
// are logged and returned but never lose the already-computed history.
func (s *Service) RunCycle(ctx context.Context) error {
	store := history.Load(s.cfg.HistoryPath)

	jars, err := s.bank.FetchJars(ctx)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	now := time.Now().UTC()
	today := now.Format(models.DateLayout)

	reports := make([]models.JarReport, 0, len(jars))
	for _, jar := range jars {
		var goal *int64
		if jar.Goal > 0 {
			g := jar.Goal
			goal = &g
		}
		rec, err := models.NewDailyRecord(today, jar.Balance, goal)
		if err != nil {
			return fmt.Errorf("failed to build record for jar %s: %w", jar.ID, err)
		}

		prev, hasPrev := store.PreviousRecord(jar.ID, today)
		store = store.AddRecord(jar.ID, jar.Title, rec)

		r := models.JarReport{
			JarID:       jar.ID,
			Name:        jar.Title,
			Amount:      jar.Balance,
			Goal:        goal,
			HasPrevious: hasPrev,
		}
		if hasPrev {
			r.Delta = jar.Balance - prev.Amount
		}
		reports = append(reports, r)
	}

	text := report.BuildMessage(reports, now)
	chartPNG := chart.GenerateChart(reports)
	historyPNG := s.renderHistoryChart(store)

	s.mu.Lock()
	s.lastReports = reports
	s.lastChart = chartPNG
	s.lastHistoryChart = historyPNG
	s.lastUpdated = store.LastUpdated
	s.mu.Unlock()

	// Delivery channels run in parallel and independently: one failed channel
	// is reported but must not cancel the others or prevent the history from
	// being saved.
	var g errgroup.Group
	g.Go(func() error {
		if err := s.tg.SendPhoto(ctx, text, chartPNG); err != nil {
			s.log.Warnf("Chart delivery failed, falling back to a text report: %v", err)
			return s.tg.SendMessage(ctx, text)
		}
		return nil
	})
	if historyPNG != nil {
		g.Go(func() error {
			caption := fmt.Sprintf("Last %d days", s.cfg.HistoryChartDays)
			return s.tg.SendPhoto(ctx, caption, historyPNG)
		})
	}
	if s.mail != nil {
		g.Go(func() error {
			return s.mail.SendReport("Jar balance report "+today, text, chartPNG)
		})
	}
	deliveryErr := g.Wait()
	if deliveryErr != nil {
		s.log.Errorf("Report delivery failed: %v", deliveryErr)
	}

	if err := history.Save(s.cfg.HistoryPath, store); err != nil {
		s.log.Errorf("Failed to save history: %v", err)
		return fmt.Errorf("history save failed: %w", err)
	}

	s.log.Infof("Poll cycle finished: %d jars, history saved to %s", len(jars), s.cfg.HistoryPath)
	return deliveryErr
}

// renderHistoryChart builds the line chart over the recent records of every
// jar, or nil when the history chart is disabled
func (s *Service) renderHistoryChart(store history.Store) []byte {
	days := s.cfg.HistoryChartDays
	if days <= 0 {
		return nil
	}

	var series []chart.LineSeries
	for _, jar := range store.Jars {
		records := store.RecentRecords(jar.JarID, days)
		points := make([]chart.ChartPoint, 0, len(records))
		for _, r := range records {
			points = append(points, chart.ChartPoint{Date: r.Date, Amount: r.Amount})
		}
		series = append(series, chart.LineSeries{Name: jar.Name, Points: points})
	}
	return chart.GenerateLineChart(series, 800, 400)
}

// LastReports returns the most recent cycle's reports and store timestamp
func (s *Service) LastReports() ([]models.JarReport, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastReports, s.lastUpdated
}

// LastChart returns the most recent progress chart image
func (s *Service) LastChart() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastChart
}

// LastHistoryChart returns the most recent history line chart image
func (s *Service) LastHistoryChart() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastHistoryChart
}
