package database

import (
	"path/filepath"
	"testing"

	"github.com/marklab/annotator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name        string
		dbPath      string
		wantErr     bool
		checkResult func(*testing.T, *DB)
	}{
		{
			name:    "successful connection with in-memory database",
			dbPath:  ":memory:",
			wantErr: false,
			checkResult: func(t *testing.T, conn *DB) {
				assert.NotNil(t, conn)
				assert.NotNil(t, conn.DB)
			},
		},
		{
			name:    "successful connection with file database",
			dbPath:  filepath.Join(t.TempDir(), "test.db"),
			wantErr: false,
			checkResult: func(t *testing.T, conn *DB) {
				assert.NotNil(t, conn)
				assert.NotNil(t, conn.DB)
			},
		},
		{
			name:    "empty database path creates in-memory database",
			dbPath:  "",
			wantErr: false,
			checkResult: func(t *testing.T, conn *DB) {
				assert.NotNil(t, conn)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := Initialize(tt.dbPath, false)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)

			if tt.checkResult != nil {
				tt.checkResult(t, conn)
			}

			if conn != nil {
				conn.Close()
			}
		})
	}
}

func TestDB_Close(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	require.NotNil(t, conn)

	err = conn.Close()
	assert.NoError(t, err)

	// Verify connection is closed by checking if health check fails
	err = conn.HealthCheck()
	assert.Error(t, err, "HealthCheck should fail after database is closed")
}

func TestDB_HealthCheck(t *testing.T) {
	tests := []struct {
		name      string
		setupConn func() (*DB, func())
		wantErr   bool
	}{
		{
			name: "healthy connection",
			setupConn: func() (*DB, func()) {
				conn, _ := Initialize(":memory:", false)
				return conn, func() {
					if conn != nil {
						conn.Close()
					}
				}
			},
			wantErr: false,
		},
		{
			name: "closed connection",
			setupConn: func() (*DB, func()) {
				conn, _ := Initialize(":memory:", false)
				conn.Close()
				return conn, func() {}
			},
			wantErr: true,
		},
		{
			name: "nil connection",
			setupConn: func() (*DB, func()) {
				return nil, func() {}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, cleanup := tt.setupConn()
			defer cleanup()

			err := conn.HealthCheck()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDB_AutoMigrate(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	require.NotNil(t, conn)
	defer conn.Close()

	err = conn.AutoMigrate(&models.Video{})
	require.NoError(t, err)

	var count int64
	err = conn.DB.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='videos'").Scan(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Migration with no models is a no-op
	assert.NoError(t, conn.AutoMigrate())
}

func TestDB_CatalogOperations(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	require.NotNil(t, conn)
	defer conn.Close()

	err = conn.AutoMigrate(&models.Video{})
	require.NoError(t, err)

	t.Run("create record", func(t *testing.T) {
		video := models.Video{Key: "line_a/cam2.mp4", Title: "Line A", Duration: 120}
		err := conn.DB.Create(&video).Error
		assert.NoError(t, err)
		assert.NotZero(t, video.ID)
	})

	t.Run("find record", func(t *testing.T) {
		var video models.Video
		err := conn.DB.First(&video, "key = ?", "line_a/cam2.mp4").Error
		assert.NoError(t, err)
		assert.Equal(t, "Line A", video.Title)
		assert.Equal(t, 120.0, video.Duration)
	})

	t.Run("duplicate key is rejected", func(t *testing.T) {
		dup := models.Video{Key: "line_a/cam2.mp4", Title: "Duplicate", Duration: 60}
		err := conn.DB.Create(&dup).Error
		assert.Error(t, err)
	})

	t.Run("delete record", func(t *testing.T) {
		err := conn.DB.Where("key = ?", "line_a/cam2.mp4").Delete(&models.Video{}).Error
		assert.NoError(t, err)

		var count int64
		conn.DB.Model(&models.Video{}).Where("key = ?", "line_a/cam2.mp4").Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestDB_Transaction(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	require.NotNil(t, conn)
	defer conn.Close()

	err = conn.AutoMigrate(&models.Video{})
	require.NoError(t, err)

	t.Run("successful transaction", func(t *testing.T) {
		err := conn.DB.Transaction(func(tx *gorm.DB) error {
			for i, key := range []string{"a.mp4", "b.mp4", "c.mp4"} {
				video := models.Video{Key: key, Title: key, Duration: float64(10 + i)}
				if err := tx.Create(&video).Error; err != nil {
					return err
				}
			}
			return nil
		})

		assert.NoError(t, err)

		var count int64
		conn.DB.Model(&models.Video{}).Count(&count)
		assert.Equal(t, int64(3), count)
	})

	t.Run("failed transaction rollback", func(t *testing.T) {
		var countBefore int64
		conn.DB.Model(&models.Video{}).Count(&countBefore)

		err := conn.DB.Transaction(func(tx *gorm.DB) error {
			video := models.Video{Key: "rollback.mp4", Title: "rollback", Duration: 5}
			if err := tx.Create(&video).Error; err != nil {
				return err
			}
			return gorm.ErrInvalidTransaction
		})

		assert.Error(t, err)

		var countAfter int64
		conn.DB.Model(&models.Video{}).Count(&countAfter)
		assert.Equal(t, countBefore, countAfter)
	})
}
