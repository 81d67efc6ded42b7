package mocks

//go:generate mockgen -destination=./mock_series_source.go -package=mocks github.com/rxtech-lab/pricefeed/pkg/marketdata/provider SeriesSource
//go:generate mockgen -destination=./mock_batch_source.go -package=mocks github.com/rxtech-lab/pricefeed/pkg/marketdata/provider BatchSource
//go:generate mockgen -destination=./mock_sector_source.go -package=mocks github.com/rxtech-lab/pricefeed/pkg/marketdata/provider SectorSource
