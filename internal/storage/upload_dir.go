package storage

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid/v5"
)

// ErrEmptyFilename 清洗后文件名为空
var ErrEmptyFilename = errors.New("filename is empty after sanitizing")

// UploadDir 上传文件的临时目录
// 每次保存都写入独立的 <root>/<uuidv7>/ 子目录，同名文件并发上传互不覆盖
type UploadDir struct {
	root string
}

// SavedFile 一次保存的结果
type SavedFile struct {
	Dir  string // 本次请求独占的子目录
	Path string // 文件完整路径
	Name string // 清洗后的文件名
	Size int64
	MD5  string // 文件内容的MD5，用作缓存键
}

// NewUploadDir 创建(如不存在)上传根目录
func NewUploadDir(root string) (*UploadDir, error) {
	if root == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录 %s 失败: %w", root, err)
	}
	return &UploadDir{root: root}, nil
}

// Root 上传根目录
func (u *UploadDir) Root() string { return u.root }

// Save 将上传的文件按清洗后的原始文件名写入新的子目录
// 写入失败时已创建的子目录会被清理
func (u *UploadDir) Save(fh *multipart.FileHeader) (*SavedFile, error) {
	if fh == nil {
		return nil, fmt.Errorf("file header is nil")
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("打开上传文件失败: %w", err)
	}
	defer src.Close()

	return u.SaveReader(fh.Filename, src)
}

// SaveReader 与 Save 相同，数据来自任意 io.Reader
func (u *UploadDir) SaveReader(filename string, src io.Reader) (*SavedFile, error) {
	name := SecureFilename(filename)
	if name == "" {
		return nil, ErrEmptyFilename
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成上传目录ID失败: %w", err)
	}
	dir := filepath.Join(u.root, id.String())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建请求目录失败: %w", err)
	}

	saved := &SavedFile{Dir: dir, Path: filepath.Join(dir, name), Name: name}
	if err := writeWithMD5(saved, src); err != nil {
		os.RemoveAll(dir)
		return nil, err
	}
	return saved, nil
}

func writeWithMD5(saved *SavedFile, src io.Reader) error {
	dst, err := os.OpenFile(saved.Path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}

	hasher := md5.New()
	n, err := io.Copy(io.MultiWriter(dst, hasher), src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("写入上传文件失败: %w", err)
	}

	saved.Size = n
	saved.MD5 = hex.EncodeToString(hasher.Sum(nil))
	return nil
}

// Remove 删除该次保存的整个子目录，重复调用是安全的
func (u *UploadDir) Remove(saved *SavedFile) error {
	if saved == nil || saved.Dir == "" {
		return nil
	}
	// 只允许删除根目录下的子目录
	rel, err := filepath.Rel(u.root, saved.Dir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("拒绝删除上传目录之外的路径: %s", saved.Dir)
	}
	if err := os.RemoveAll(saved.Dir); err != nil {
		return fmt.Errorf("删除上传文件失败: %w", err)
	}
	return nil
}
