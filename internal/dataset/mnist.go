package dataset

import (
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// MNIST IDX format constants.
const (
	idxImagesMagic = 2051
	idxLabelsMagic = 2049

	mnistPixels  = 784 // 28x28
	mnistClasses = 10
)

// LoadMNIST loads the official MNIST dataset in IDX binary format from
// a directory.
//
// Expected files in dataDir:
//   - train-images-idx3-ubyte and train-labels-idx1-ubyte (train=true)
//   - t10k-images-idx3-ubyte and t10k-labels-idx1-ubyte (train=false)
//
// maxSamples limits how many samples are kept (0 = all). Pixels are
// normalized from 0-255 to [0, 1].
//
// Download MNIST from: http://yann.lecun.com/exdb/mnist/
func LoadMNIST(dataDir string, train bool, maxSamples int) (*InMemory, error) {
	var imageFile, labelFile string
	if train {
		imageFile = filepath.Join(dataDir, "train-images-idx3-ubyte")
		labelFile = filepath.Join(dataDir, "train-labels-idx1-ubyte")
	} else {
		imageFile = filepath.Join(dataDir, "t10k-images-idx3-ubyte")
		labelFile = filepath.Join(dataDir, "t10k-labels-idx1-ubyte")
	}
	return LoadIDX(imageFile, labelFile, maxSamples)
}

// LoadIDX loads an image/label pair of IDX files into a dataset.
//
// maxSamples limits how many samples are kept (0 = all).
func LoadIDX(imagesPath, labelsPath string, maxSamples int) (*InMemory, error) {
	imagesRaw, err := readIDXImages(imagesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}

	labelsRaw, err := readIDXLabels(labelsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}

	if len(imagesRaw) != len(labelsRaw) {
		return nil, fmt.Errorf("image count (%d) != label count (%d)", len(imagesRaw), len(labelsRaw))
	}

	numSamples := len(imagesRaw)
	if maxSamples > 0 && numSamples > maxSamples {
		numSamples = maxSamples
	}

	features := make([][]float64, numSamples)
	labels := make([]int, numSamples)
	for i := 0; i < numSamples; i++ {
		row := make([]float64, len(imagesRaw[i]))
		for j, pixel := range imagesRaw[i] {
			// Normalize: 0-255 -> 0.0-1.0
			row[j] = float64(pixel) / 255.0
		}
		features[i] = row

		label := int(labelsRaw[i])
		if label >= mnistClasses {
			return nil, fmt.Errorf("label out of range [0, 9] at sample %d: %d", i, label)
		}
		labels[i] = label
	}

	return NewInMemory(features, labels)
}

// readIDXImages reads an MNIST image file in IDX format.
//
// IDX file format for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes (28)
//	number of cols: 4 bytes (28)
//	pixel data: unsigned bytes (0-255)
func readIDXImages(filename string) ([][]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var magic uint32
	if err := binary.Read(file, binary.BigEndian, &magic); err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", err)
	}
	if magic != idxImagesMagic {
		return nil, fmt.Errorf("invalid magic number: got %d, want %d", magic, idxImagesMagic)
	}

	var numImages, numRows, numCols uint32
	if err := binary.Read(file, binary.BigEndian, &numImages); err != nil {
		return nil, err
	}
	if err := binary.Read(file, binary.BigEndian, &numRows); err != nil {
		return nil, err
	}
	if err := binary.Read(file, binary.BigEndian, &numCols); err != nil {
		return nil, err
	}

	imageSize := int(numRows * numCols)
	images := make([][]byte, numImages)
	for i := range images {
		images[i] = make([]byte, imageSize)
		if _, err := io.ReadFull(file, images[i]); err != nil {
			return nil, fmt.Errorf("failed to read image %d: %w", i, err)
		}
	}

	return images, nil
}

// readIDXLabels reads an MNIST label file in IDX format.
//
// IDX file format for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes (0-9)
func readIDXLabels(filename string) ([]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var magic uint32
	if err := binary.Read(file, binary.BigEndian, &magic); err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", err)
	}
	if magic != idxLabelsMagic {
		return nil, fmt.Errorf("invalid magic number: got %d, want %d", magic, idxLabelsMagic)
	}

	var numLabels uint32
	if err := binary.Read(file, binary.BigEndian, &numLabels); err != nil {
		return nil, err
	}

	labels := make([]byte, numLabels)
	if _, err := io.ReadFull(file, labels); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}

	return labels, nil
}

// LoadMNISTCSV loads MNIST data from a Kaggle-style CSV file.
//
// CSV format:
//
//	label,pixel0,pixel1,...,pixel783
//	5,0,0,12,...,0
//
// maxSamples limits how many samples are kept (0 = all). Pixels are
// normalized from 0-255 to [0, 1].
func LoadMNISTCSV(filename string, maxSamples int) (*InMemory, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV file is empty or missing header")
	}

	// Skip header row.
	records = records[1:]
	numSamples := len(records)
	if maxSamples > 0 && numSamples > maxSamples {
		numSamples = maxSamples
		records = records[:numSamples]
	}

	features := make([][]float64, numSamples)
	labels := make([]int, numSamples)
	for i, record := range records {
		if len(record) != mnistPixels+1 { // 1 label + 784 pixels
			return nil, fmt.Errorf("invalid record length at row %d: got %d, want %d", i+1, len(record), mnistPixels+1)
		}

		label, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid label at row %d: %w", i+1, err)
		}
		if label < 0 || label >= mnistClasses {
			return nil, fmt.Errorf("label out of range [0, 9] at row %d: %d", i+1, label)
		}
		labels[i] = label

		row := make([]float64, mnistPixels)
		for j := 0; j < mnistPixels; j++ {
			pixel, err := strconv.Atoi(record[j+1])
			if err != nil {
				return nil, fmt.Errorf("invalid pixel at row %d, column %d: %w", i+1, j+1, err)
			}
			row[j] = float64(pixel) / 255.0
		}
		features[i] = row
	}

	return NewInMemory(features, labels)
}
