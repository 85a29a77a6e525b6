package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/fyx-storefront/internal/model"
)

var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{model.ErrNotFound, codes.NotFound},
	{model.ErrSessionNotFound, codes.NotFound},

	{model.ErrInvalidEmail, codes.InvalidArgument},
	{model.ErrInvalidPhone, codes.InvalidArgument},
	{model.ErrUnknownAccount, codes.InvalidArgument},
	{model.ErrNameRequired, codes.InvalidArgument},
	{model.ErrInvalidQuantity, codes.InvalidArgument},
	{model.ErrInvalidOption, codes.InvalidArgument},
	{model.ErrImagesNotAllowed, codes.InvalidArgument},
	{model.ErrLineOutOfRange, codes.InvalidArgument},
	{model.ErrInvalidRating, codes.InvalidArgument},
	{model.ErrDetailsIncomplete, codes.InvalidArgument},
	{model.ErrInvalidPaymentMethod, codes.InvalidArgument},
	{model.ErrInvalidStatus, codes.InvalidArgument},

	{model.ErrInvalidOTP, codes.Unauthenticated},
	{model.ErrLoginRequired, codes.Unauthenticated},
	{model.ErrAdminRequired, codes.PermissionDenied},
	{model.ErrNotOrderOwner, codes.PermissionDenied},

	{model.ErrOTPNotRequested, codes.FailedPrecondition},
	{model.ErrWrongStep, codes.FailedPrecondition},
	{model.ErrCartEmpty, codes.FailedPrecondition},
	{model.ErrProofRequired, codes.FailedPrecondition},
	{model.ErrInvalidTransition, codes.FailedPrecondition},
	{model.ErrConfirmationRequired, codes.FailedPrecondition},
	{model.ErrNotClosable, codes.FailedPrecondition},

	{context.Canceled, codes.Canceled},
	{context.DeadlineExceeded, codes.DeadlineExceeded},
}

func handleError(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return status.Error(ec.code, ec.err.Error())
		}
	}
	return status.Error(codes.Internal, "internal server error")
}
