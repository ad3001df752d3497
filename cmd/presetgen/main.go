// presetgen 构建随服务分发的假设参数库（SQLite）
// 用法: presetgen -out ./data/cppg_presets.db [-in extra_presets.json] [-builtin=false]
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"cppg-calc-backend/internal/presets"
	"cppg-calc-backend/pkg/presetbank"
)

func main() {
	out := flag.String("out", presetbank.DefaultDBFileName, "输出的参数库文件路径")
	in := flag.String("in", "", "追加的预设JSON文件（presetbank.Preset 数组）")
	builtin := flag.Bool("builtin", true, "是否写入内置默认预设")
	flag.Parse()

	var list []presetbank.Preset
	if *builtin {
		list = presets.BuiltinPresets()
	}

	if *in != "" {
		data, err := os.ReadFile(*in)
		if err != nil {
			log.Fatalf("读取预设文件失败: %v", err)
		}
		var extra []presetbank.Preset
		if err := json.Unmarshal(data, &extra); err != nil {
			log.Fatalf("解析预设文件失败: %v", err)
		}
		list = append(list, extra...)
	}

	if len(list) == 0 {
		log.Fatal("没有可写入的预设")
	}

	if err := presetbank.Build(*out, list); err != nil {
		log.Fatalf("构建参数库失败: %v", err)
	}
	log.Printf("参数库已生成: %s（%d 组预设）", presetbank.ResolvePath(*out), len(list))
}
