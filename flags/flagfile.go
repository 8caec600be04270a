// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// package flags
// flagfile.go
// --flagfile=path 间接：从文件逐行读取更多命令行令牌。
// 一行一个令牌（值里允许空格）；空行和 # 开头的行跳过；
// 文件内可以继续写 --flagfile 形成嵌套，同一文件在一次解析中
// 只展开一次，循环引用直接报错。

package flags

import (
	"bufio"
	"os"
	"strings"

	"github.com/maxiaolu1981/cretem/flagcore/errors"
	"github.com/maxiaolu1981/cretem/flagcore/util/sets"
)

const flagfileFlagName = "flagfile"

// expandFlagFile 读取一个 flagfile 并返回其中的令牌。
// 嵌套 --flagfile 行留在返回序列里，由解析主循环继续展开；
// seen 跨整个 Parse 调用共享，用来截断循环引用。
func expandFlagFile(path string, seen sets.String) ([]string, error) {
	if seen.Has(path) {
		return nil, newParseError(flagfileFlagName, path,
			errors.Errorf("flagfile %q references itself (directly or through another flagfile)", path))
	}
	seen.Insert(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, newParseError(flagfileFlagName, path, err)
	}
	defer file.Close()

	var tokens []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens = append(tokens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, newParseError(flagfileFlagName, path, err)
	}
	return tokens, nil
}
