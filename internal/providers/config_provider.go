package providers

import (
	"cft/internal/structures"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "CFT_LOG_LEVEL")
	viper.BindEnv("persistence.dir", "CFT_DATA_DIR")
	viper.BindEnv("persistence.saveInterval", "CFT_SAVE_INTERVAL")
	viper.BindEnv("persistence.backupInterval", "CFT_BACKUP_INTERVAL")
	viper.BindEnv("cache.enabled", "CFT_CACHE_ENABLED")
	viper.BindEnv("cache.size", "CFT_CACHE_SIZE")
	viper.BindEnv("migration.auto", "CFT_MIGRATION_AUTO")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	applyAnalyticsDefaults(&conf)

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "CommunityFundTracker"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

// applyAnalyticsDefaults fills the benchmark tables for every threshold the
// config file left unset, so a minimal config still produces full analytics.
func applyAnalyticsDefaults(conf *structures.Config) {
	def := structures.DefaultAnalytics()
	a := &conf.Analytics
	if a.TopDonorLimit <= 0 {
		a.TopDonorLimit = def.TopDonorLimit
	}
	if len(a.DonationBuckets) == 0 {
		a.DonationBuckets = def.DonationBuckets
	}
	if len(a.ExpenseBuckets) == 0 {
		a.ExpenseBuckets = def.ExpenseBuckets
	}
	if len(a.Benchmarks) == 0 {
		a.Benchmarks = def.Benchmarks
	}
	if a.FallbackBenchmark <= 0 {
		a.FallbackBenchmark = def.FallbackBenchmark
	}
	if len(a.BudgetLimits) == 0 {
		a.BudgetLimits = def.BudgetLimits
	}
	if a.FallbackBudget <= 0 {
		a.FallbackBudget = def.FallbackBudget
	}
	if a.HighAvgExpense <= 0 {
		a.HighAvgExpense = def.HighAvgExpense
	}
	if a.BulkSavingsRate <= 0 {
		a.BulkSavingsRate = def.BulkSavingsRate
	}
	if len(a.BulkExemptCategories) == 0 {
		a.BulkExemptCategories = def.BulkExemptCategories
	}
	if a.HighTxnCount <= 0 {
		a.HighTxnCount = def.HighTxnCount
	}
	if a.PerTxnCost <= 0 {
		a.PerTxnCost = def.PerTxnCost
	}

	defH := structures.DefaultHeuristics()
	h := &conf.Heuristics
	if h.FlatsPerFloor <= 0 {
		h.FlatsPerFloor = defH.FlatsPerFloor
	}
	if len(h.CostWarningLimits) == 0 {
		h.CostWarningLimits = defH.CostWarningLimits
	}
	if h.FallbackCostWarning <= 0 {
		h.FallbackCostWarning = defH.FallbackCostWarning
	}
}
