package email

// Email HTML şablonları. fmt.Sprintf ile doldurulur — üç %s de aynı
// linktir (buton href, fallback link href, fallback link metni).
// Inline style zorunlu: email client'ları <style> bloklarını desteklemez.

const verifyEmailTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f7f9fa;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#f7f9fa;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#0f1419;font-size:24px;margin:0 0 8px 0;">chirp</h1>
              <h2 style="color:#0f1419;font-size:18px;margin:0 0 24px 0;">Verify your email address</h2>
              <p style="color:#536471;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                Thanks for signing up. Click the button below to confirm this email address belongs to you.
              </p>
              <table cellpadding="0" cellspacing="0" style="margin:0 0 24px 0;">
                <tr>
                  <td style="background-color:#1d9bf0;border-radius:6px;padding:12px 32px;">
                    <a href="%s" style="color:#ffffff;text-decoration:none;font-size:15px;font-weight:600;">
                      Verify Email
                    </a>
                  </td>
                </tr>
              </table>
              <p style="color:#536471;font-size:13px;line-height:1.6;margin:0 0 16px 0;">
                If you didn't create an account, you can safely ignore this email.
              </p>
              <p style="color:#8b98a5;font-size:13px;line-height:1.6;margin:0;word-break:break-all;">
                If the button doesn't work, copy and paste this link:<br>
                <a href="%s" style="color:#1d9bf0;">%s</a>
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

const resetPasswordTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f7f9fa;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#f7f9fa;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#0f1419;font-size:24px;margin:0 0 8px 0;">chirp</h1>
              <h2 style="color:#0f1419;font-size:18px;margin:0 0 24px 0;">Password Reset Request</h2>
              <p style="color:#536471;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                We received a request to reset your password. Click the button below to choose a new password.
              </p>
              <table cellpadding="0" cellspacing="0" style="margin:0 0 24px 0;">
                <tr>
                  <td style="background-color:#1d9bf0;border-radius:6px;padding:12px 32px;">
                    <a href="%s" style="color:#ffffff;text-decoration:none;font-size:15px;font-weight:600;">
                      Reset Password
                    </a>
                  </td>
                </tr>
              </table>
              <p style="color:#536471;font-size:13px;line-height:1.6;margin:0 0 16px 0;">
                This link will expire in 1 hour. If you didn't request a password reset, you can safely ignore this email.
              </p>
              <p style="color:#8b98a5;font-size:13px;line-height:1.6;margin:0;word-break:break-all;">
                If the button doesn't work, copy and paste this link:<br>
                <a href="%s" style="color:#1d9bf0;">%s</a>
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
