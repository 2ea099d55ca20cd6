package utils

import (
	"errors"
	"mime/multipart"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ValidateUrlParamID(param string) error {
	if param == "" {
		return errors.New("parameter is missing from url path")
	}
	if !primitive.IsValidObjectID(param) {
		return errors.New("parameter is not a valid id")
	}
	return nil
}

func ValidateAttachment(fileHeader *multipart.FileHeader, maxSizeInBytes int64) error {
	if fileHeader == nil {
		return errors.New("file is required")
	}
	if fileHeader.Size <= 0 {
		return errors.New("file is empty")
	}
	if fileHeader.Size > maxSizeInBytes {
		return errors.New("file size exceeds the maximum limit")
	}
	return nil
}
