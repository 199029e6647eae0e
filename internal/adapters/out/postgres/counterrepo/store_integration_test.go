package counterrepo_test

import (
	"context"
	"sync"
	"testing"

	"storefront/internal/adapters/out/postgres/counterrepo"
	"storefront/internal/adapters/out/postgres/pgtest"

	"github.com/stretchr/testify/suite"
)

type CounterStoreIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	store    *counterrepo.GormCounterStore
}

func (suite *CounterStoreIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *CounterStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("counters"))
	suite.store = counterrepo.NewGormCounterStore(suite.database.DB)
}

func (suite *CounterStoreIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *CounterStoreIntegrationTestSuite) TestIncrementAndFetch_CreatesCounterAtOne() {
	value, err := suite.store.IncrementAndFetch(context.Background(), "DHA")

	suite.Require().NoError(err)
	suite.Equal(int64(1), value)

	var dto counterrepo.CounterDTO
	suite.Require().NoError(suite.database.DB.First(&dto, "id = ?", "DHA").Error)
	suite.Equal(int64(1), dto.SequenceValue)
}

func (suite *CounterStoreIntegrationTestSuite) TestIncrementAndFetch_ContinuesExistingCounter() {
	suite.Require().NoError(suite.database.DB.Create(&counterrepo.CounterDTO{ID: "DHA", SequenceValue: 6}).Error)

	value, err := suite.store.IncrementAndFetch(context.Background(), "DHA")

	suite.Require().NoError(err)
	suite.Equal(int64(7), value)
}

func (suite *CounterStoreIntegrationTestSuite) TestIncrementAndFetch_RegionsAreIndependent() {
	ctx := context.Background()

	for range 3 {
		_, err := suite.store.IncrementAndFetch(ctx, "DHA")
		suite.Require().NoError(err)
	}
	value, err := suite.store.IncrementAndFetch(ctx, "CHI")

	suite.Require().NoError(err)
	suite.Equal(int64(1), value)
}

func (suite *CounterStoreIntegrationTestSuite) TestIncrementAndFetch_ConcurrentCallersGetDistinctValues() {
	const workers = 20
	const perWorker = 10
	ctx := context.Background()

	values := make(chan int64, workers*perWorker)
	errs := make(chan error, workers*perWorker)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				value, err := suite.store.IncrementAndFetch(ctx, "SYL")
				if err != nil {
					errs <- err
					continue
				}
				values <- value
			}
		}()
	}
	wg.Wait()
	close(values)
	close(errs)

	for err := range errs {
		suite.Require().NoError(err)
	}

	seen := make(map[int64]bool, workers*perWorker)
	for value := range values {
		suite.False(seen[value], "value %d returned twice", value)
		seen[value] = true
	}
	suite.Len(seen, workers*perWorker)
	for i := int64(1); i <= workers*perWorker; i++ {
		suite.True(seen[i], "value %d is missing", i)
	}
}

func (suite *CounterStoreIntegrationTestSuite) TestIncrementAndFetch_CancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.store.IncrementAndFetch(ctx, "DHA")

	suite.Require().Error(err)
}

func TestCounterStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CounterStoreIntegrationTestSuite))
}
