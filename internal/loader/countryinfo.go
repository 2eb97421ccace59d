package loader

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"country-api/internal/country"
	"country-api/internal/logger"
)

const infoColumns = 19

// ParseCountryInfo：解析 geonames countryInfo.txt（制表符分隔，19 列，# 开头为注释）
// 约束：数值列按原值解析；语言标签无法识别的片段跳过并记日志；RE2 不接受的邮编正则保持未编译
func ParseCountryInfo(r io.Reader) ([]*country.Country, error) {
	sc := newScanner(r)
	var out []*country.Country
	line := 0
	for sc.Scan() {
		line++
		s := sc.Text()
		if strings.TrimSpace(s) == "" || strings.HasPrefix(s, "#") {
			continue
		}
		f := strings.Split(s, "\t")
		if len(f) < infoColumns {
			// 行尾空列可能被编辑器裁掉
			f = append(f, make([]string, infoColumns-len(f))...)
		}
		c, err := parseInfoRow(f)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, c)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseInfoRow(f []string) (*country.Country, error) {
	c := &country.Country{
		ISO:              strings.TrimSpace(f[0]),
		ISO3:             f[1],
		FIPS:             f[3],
		Name:             f[4],
		Capital:          f[5],
		Continent:        f[8],
		TLD:              f[9],
		CurrencyCode:     f[10],
		CurrencyName:     f[11],
		Phone:            f[12],
		PostalCodeFormat: f[13],
		PostalCodeRegex:  f[14],
		EquivalentFIPS:   strings.TrimSpace(f[18]),
	}
	var err error
	if c.ISONumeric, err = atoiOpt(f[2]); err != nil {
		return nil, fmt.Errorf("iso numeric %q: %w", f[2], err)
	}
	if s := strings.TrimSpace(f[6]); s != "" {
		if c.Area, err = strconv.ParseFloat(s, 64); err != nil {
			return nil, fmt.Errorf("area %q: %w", s, err)
		}
	}
	if s := strings.TrimSpace(f[7]); s != "" {
		if c.Population, err = strconv.ParseInt(s, 10, 64); err != nil {
			return nil, fmt.Errorf("population %q: %w", s, err)
		}
	}
	if s := strings.TrimSpace(f[16]); s != "" {
		if c.GeonameID, err = strconv.ParseInt(s, 10, 64); err != nil {
			return nil, fmt.Errorf("geonameid %q: %w", s, err)
		}
	}
	if c.PostalCodeRegex != "" {
		if re, e := regexp.Compile(c.PostalCodeRegex); e == nil {
			c.PostalCodePattern = re
		} else {
			logger.L().Debug("loader_postal_regex_skip", "iso", c.ISO, "err", e)
		}
	}
	tags, bad := country.ParseLocales(f[15])
	c.Locales = tags
	if len(bad) > 0 {
		logger.L().Debug("loader_locale_skip", "iso", c.ISO, "tags", bad)
	}
	for _, n := range strings.Split(f[17], ",") {
		if n = strings.TrimSpace(n); n != "" {
			c.Neighbours = append(c.Neighbours, n)
		}
	}
	return c, nil
}

func atoiOpt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
