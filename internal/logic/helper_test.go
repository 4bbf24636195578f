package logic

import (
	"fmt"
	"testing"

	"github.com/blues/gms/internal/database"
	"github.com/blues/gms/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB 每个测试一个独立的内存库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// createFoundation 建一个带可用收款账户的建造者
func createFoundation(t *testing.T, db *gorm.DB, name string, payoutStatus model.PayoutAccountStatus) *model.Foundation {
	t.Helper()

	foundation := model.Foundation{
		Name:                name,
		Email:               name + "@example.com",
		PayoutAccountID:     "acct_" + name,
		PayoutAccountStatus: string(payoutStatus),
	}
	require.NoError(t, db.Create(&foundation).Error)
	return &foundation
}

// createCreation 建一个已发布作品
func createCreation(t *testing.T, db *gorm.DB, foundationID uint, price, builderPct, downstreamPct int64) *model.Creation {
	t.Helper()

	creation := model.Creation{
		FoundationID:       foundationID,
		Title:              fmt.Sprintf("creation-%d", foundationID),
		BasePrice:          price,
		BuilderSharePct:    builderPct,
		DownstreamSharePct: downstreamPct,
		Visibility:         string(model.CreationVisibilityPublic),
		Status:             string(model.CreationStatusPublished),
	}
	require.NoError(t, db.Create(&creation).Error)
	return &creation
}

// createLineageEdge 建一条衍生边
func createLineageEdge(t *testing.T, db *gorm.DB, childID, parentID, parentFoundationID uint, active bool) *model.CreationLineage {
	t.Helper()

	edge := model.CreationLineage{
		CreationID:         childID,
		ParentCreationID:   parentID,
		ParentFoundationID: parentFoundationID,
		RelationKind:       string(model.LineageRelationDerived),
		RevenueShareActive: active,
	}
	require.NoError(t, db.Create(&edge).Error)
	if !active {
		// 模型上有default:true，零值false在Create时会被默认值覆盖，需显式写回
		require.NoError(t, db.Model(&edge).Update("revenue_share_active", false).Error)
	}
	return &edge
}
