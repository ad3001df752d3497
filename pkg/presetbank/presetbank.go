// Package presetbank 负责内置假设参数库（SQLite）的读写
// 参数库是随服务分发的只读研究数据，运行期只以只读模式打开，
// 写入仅发生在离线构建工具（cmd/presetgen）中
package presetbank

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const DefaultDBFileName = "cppg_presets.db"

// Preset 一组换算假设：近端指标 → 终身收益现值的转换系数
type Preset struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Source string `json:"source"` // 参数出处（研究文献或机构）
	Year   int    `json:"year"`   // 参数对应的研究年份

	MathGainPerSD           float64 `json:"math_gain_per_sd"`
	EarningsGainHSVsDropout float64 `json:"earnings_gain_hs_vs_dropout"`
	EarningsGainCollegeVsHS float64 `json:"earnings_gain_college_vs_hs"`
	FadeoutFactor           float64 `json:"fadeout_factor"`
	DiscountRate            float64 `json:"discount_rate"`

	Notes string `json:"notes,omitempty"`
}

// ResolvePath 目录路径补全为默认库文件名
func ResolvePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return p
	}
	if filepath.Ext(p) == "" {
		return filepath.Join(p, DefaultDBFileName)
	}
	if fi, err := os.Stat(p); err == nil && fi.IsDir() {
		return filepath.Join(p, DefaultDBFileName)
	}
	return p
}

// EnsureSchema 建表
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS presets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			source TEXT,
			year INTEGER,
			math_gain_per_sd REAL NOT NULL,
			earnings_gain_hs_vs_dropout REAL NOT NULL,
			earnings_gain_college_vs_hs REAL NOT NULL,
			fadeout_factor REAL NOT NULL,
			discount_rate REAL NOT NULL,
			notes TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_presets_year ON presets(year);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Load 只读加载参数库，按研究年份倒序
func Load(dbPath string) ([]Preset, error) {
	dbPath = ResolvePath(dbPath)
	if _, err := os.Stat(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", filepath.ToSlash(dbPath)))
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`
SELECT id, name, source, year,
       math_gain_per_sd, earnings_gain_hs_vs_dropout, earnings_gain_college_vs_hs,
       fadeout_factor, discount_rate, notes
FROM presets
ORDER BY year DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Preset
	for rows.Next() {
		var p Preset
		var source, notes sql.NullString
		var year sql.NullInt64
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&source,
			&year,
			&p.MathGainPerSD,
			&p.EarningsGainHSVsDropout,
			&p.EarningsGainCollegeVsHS,
			&p.FadeoutFactor,
			&p.DiscountRate,
			&notes,
		); err != nil {
			continue
		}
		p.Source = source.String
		p.Year = int(year.Int64)
		p.Notes = notes.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// Build 构建参数库文件（覆盖同ID记录），仅供离线工具使用
func Build(dbPath string, presets []Preset) error {
	dbPath = ResolvePath(dbPath)
	if dbPath == "" {
		return fmt.Errorf("未指定参数库路径")
	}
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s", filepath.ToSlash(dbPath)))
	if err != nil {
		return err
	}
	defer db.Close()

	if err := EnsureSchema(db); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO presets (id, name, source, year,
  math_gain_per_sd, earnings_gain_hs_vs_dropout, earnings_gain_college_vs_hs,
  fadeout_factor, discount_rate, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name, source=excluded.source, year=excluded.year,
  math_gain_per_sd=excluded.math_gain_per_sd,
  earnings_gain_hs_vs_dropout=excluded.earnings_gain_hs_vs_dropout,
  earnings_gain_college_vs_hs=excluded.earnings_gain_college_vs_hs,
  fadeout_factor=excluded.fadeout_factor,
  discount_rate=excluded.discount_rate,
  notes=excluded.notes`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range presets {
		if strings.TrimSpace(p.ID) == "" {
			tx.Rollback()
			return fmt.Errorf("预设缺少ID: %s", p.Name)
		}
		if _, err := stmt.Exec(
			p.ID, p.Name, p.Source, p.Year,
			p.MathGainPerSD, p.EarningsGainHSVsDropout, p.EarningsGainCollegeVsHS,
			p.FadeoutFactor, p.DiscountRate, p.Notes,
		); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}
