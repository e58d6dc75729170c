package file

import (
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 本包实现JSON平面文件存储
// 设计说明:
// 1. 一类聚合一个JSON文件,整文件读/整文件写,与仓储接口的
//    全量Load/Save契约一一对应
// 2. 读取时先解码成原始记录数组,再逐条解码:某条记录损坏时
//    跳过该条继续,坏数据不拖垮整个数据文件
// 3. 写入走临时文件+rename,保证落盘的文件要么是旧的完整内容
//    要么是新的完整内容,进程中途被杀不会留下半个文件

// loadRecords 读取数据文件并拆成原始记录
// 文件不存在视为空库(首次启动)
func loadRecords(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.Wrapf(err, "读取数据文件失败: %s", path)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, apperrors.Wrapf(err, "数据文件格式不正确: %s", path)
	}
	return raws, nil
}

// saveRecords 序列化记录并原子写回数据文件
func saveRecords(path string, records interface{}) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, "序列化数据失败")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.Wrapf(err, "创建数据目录失败: %s", filepath.Dir(path))
	}

	// 临时文件与目标文件同目录,保证rename不跨文件系统
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return apperrors.Wrap(err, "创建临时文件失败")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.Wrap(err, "写入临时文件失败")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.Wrap(err, "关闭临时文件失败")
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return apperrors.Wrapf(err, "写回数据文件失败: %s", path)
	}
	return nil
}
